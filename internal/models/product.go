package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Only active products can be sold.
type Product struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"not null;size:255" json:"name"`
	Type       string          `gorm:"size:50" json:"type"`
	SalesPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sales_price"`
	CostPrice  decimal.Decimal `gorm:"type:decimal(12,2)" json:"cost_price"`
	Active     bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
