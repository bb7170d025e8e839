package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Billing periods a plan can recur on.
const (
	PeriodDaily   = "DAILY"
	PeriodWeekly  = "WEEKLY"
	PeriodMonthly = "MONTHLY"
	PeriodYearly  = "YEARLY"
)

// RecurringPlan is a pricing template for subscriptions.
type RecurringPlan struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null;size:255" json:"name"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	BillingPeriod string          `gorm:"size:20;not null;default:'MONTHLY'" json:"billing_period"`
	MinQuantity   int             `gorm:"not null;default:1" json:"min_quantity"`
	ValidFrom     *time.Time      `json:"valid_from,omitempty"`
	ValidUntil    *time.Time      `json:"valid_until,omitempty"`
	Active        bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PeriodEnd returns the end of one billing unit starting at from.
func (p *RecurringPlan) PeriodEnd(from time.Time) time.Time {
	switch p.BillingPeriod {
	case PeriodDaily:
		return from.AddDate(0, 0, 1)
	case PeriodWeekly:
		return from.AddDate(0, 0, 7)
	case PeriodYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}
