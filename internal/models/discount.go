package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount types.
const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

// Discount is a promotional rule reducing a purchase amount, optionally
// gated by coupon code, validity window, usage limit and minimum purchase.
type Discount struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"not null;size:255" json:"name"`
	CouponCode  *string          `gorm:"size:50;uniqueIndex" json:"coupon_code,omitempty"`
	Type        string           `gorm:"size:20;not null;default:'PERCENTAGE'" json:"type"`
	Value       decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"value"`
	MinPurchase *decimal.Decimal `gorm:"type:decimal(12,2)" json:"min_purchase,omitempty"`
	UsageLimit  *int             `json:"usage_limit,omitempty"`
	UsedCount   int              `gorm:"not null;default:0" json:"used_count"`
	StartsAt    time.Time        `gorm:"not null" json:"starts_at"`
	EndsAt      *time.Time       `json:"ends_at,omitempty"`
	Active      bool             `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
