package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom
// indexes the tag syntax cannot express.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Category{},
		&Product{},
		&Order{},
		&OrderItem{},
		&Comment{},
	); err != nil {
		return err
	}

	// Case-insensitive unique username.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_lower " +
			"ON users ((lower(username)))",
	).Error; err != nil {
		return err
	}

	// Case-insensitive unique email.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower " +
			"ON users ((lower(email)))",
	).Error
}
