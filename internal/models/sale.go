package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"not null;index"`
	// Deleting a product deletes its sales.
	Product      Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	QuantitySold int       `gorm:"not null"`
	SaleDate     time.Time `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalPrice derives the sale amount from the product's current unit price.
// It is never stored. Product must be loaded.
func (s Sale) TotalPrice() decimal.Decimal {
	return s.Product.Price.Mul(decimal.NewFromInt(int64(s.QuantitySold)))
}
