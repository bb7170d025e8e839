package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription statuses. DRAFT is the only legal initial status for
// staff-created subscriptions; self-service purchases start ACTIVE.
const (
	SubscriptionDraft     = "DRAFT"
	SubscriptionQuotation = "QUOTATION"
	SubscriptionConfirmed = "CONFIRMED"
	SubscriptionActive    = "ACTIVE"
	SubscriptionClosed    = "CLOSED"
)

// SubscriptionStatuses lists every accepted subscription status.
var SubscriptionStatuses = []string{
	SubscriptionDraft,
	SubscriptionQuotation,
	SubscriptionConfirmed,
	SubscriptionActive,
	SubscriptionClosed,
}

// Subscription is a customer's contract to a recurring plan. It always has
// at least one line once created; lines are immutable after creation.
type Subscription struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	Number         string             `gorm:"size:50;not null;uniqueIndex" json:"number"`
	StartDate      time.Time          `gorm:"not null" json:"start_date"`
	ExpirationDate *time.Time         `json:"expiration_date,omitempty"`
	PaymentTerms   *string            `gorm:"size:255" json:"payment_terms,omitempty"`
	Status         string             `gorm:"size:20;not null;default:'DRAFT'" json:"status"`
	CustomerID     uint               `gorm:"not null;index" json:"customer_id"`
	PlanID         uint               `gorm:"not null" json:"plan_id"`
	Lines          []SubscriptionLine `gorm:"foreignKey:SubscriptionID" json:"lines,omitempty"`
	Customer       *Customer          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Plan           *RecurringPlan     `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// SubscriptionLine is a quantity of one product billed within a
// subscription at a fixed unit price.
type SubscriptionLine struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	SubscriptionID uint            `gorm:"not null;index" json:"subscription_id"`
	ProductID      uint            `gorm:"not null" json:"product_id"`
	Quantity       int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Product        *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
