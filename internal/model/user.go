package model

import "time"

// SuperAdminID is the designated super-administrator account. It is created
// by the bootstrap step on a fresh database and can never have its role
// changed or be deleted, by anyone.
const SuperAdminID uint = 1

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(80);not null" json:"username"`
	Email     string    `gorm:"type:varchar(120);not null" json:"email"`
	Password  string    `gorm:"type:varchar(256);not null" json:"-"`
	Phone     string    `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Address   string    `gorm:"type:varchar(256)" json:"address,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	Role      Role      `gorm:"type:varchar(16);not null;default:'user'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Orders []Order `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsSuperAdmin() bool { return u.ID == SuperAdminID }
