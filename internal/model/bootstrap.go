package model

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tienda/shophub/pkg/crypto"
)

// EnsureSuperUser creates the administrator account from bootstrap
// configuration if no account with that email exists yet. On a fresh
// database the row takes id 1, the protected super-administrator.
func EnsureSuperUser(db *gorm.DB, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return errors.New("bootstrap superuser requires username, email and password")
	}

	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup superuser: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash superuser password: %w", err)
	}

	super := User{
		Username: username,
		Email:    email,
		Password: hash,
		IsActive: true,
		Role:     RoleAdmin,
	}
	if err := db.Create(&super).Error; err != nil {
		return fmt.Errorf("create superuser: %w", err)
	}
	return nil
}
