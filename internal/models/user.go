package models

import "time"

// Role names used by the authorization guard.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"` // admin, staff
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"unique;not null;index"`
	Email     string
	Password  string `gorm:"not null"` // bcrypt hash
	RoleID    uint
	Role      Role `gorm:"foreignKey:RoleID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
