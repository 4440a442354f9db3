package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Catalog models: categories and the products they group.

type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"` // uniqueness intentionally not enforced
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID         uint `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	CategoryID uint   `gorm:"not null;index"`
	// Deleting a category deletes its products. The cascade is declared here
	// on purpose rather than relying on driver defaults.
	Category    Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int             `gorm:"not null"` // stock on hand; can go negative, see sale recording
	CreatedByID uint            `gorm:"index"`
	CreatedBy   User            `gorm:"foreignKey:CreatedByID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
