package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoiceDraft     = "DRAFT"
	InvoiceConfirmed = "CONFIRMED"
	InvoicePaid      = "PAID"
	InvoiceCancelled = "CANCELLED"
)

// InvoiceStatuses lists every accepted invoice status.
var InvoiceStatuses = []string{
	InvoiceDraft,
	InvoiceConfirmed,
	InvoicePaid,
	InvoiceCancelled,
}

// Invoice is a billing document for a fixed monetary total, tied to one
// subscription and one customer. Subtotal/discount/tax are fixed at
// creation; only status and payment-derived fields change afterwards.
type Invoice struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Number         string          `gorm:"size:50;not null;uniqueIndex" json:"number"`
	SubscriptionID uint            `gorm:"not null;index" json:"subscription_id"`
	CustomerID     uint            `gorm:"not null;index" json:"customer_id"`
	Status         string          `gorm:"size:20;not null;default:'DRAFT'" json:"status"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax_total"`
	DiscountTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount_total"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	DueDate        time.Time       `gorm:"not null" json:"due_date"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	PaymentMethod  *string         `gorm:"size:20" json:"payment_method,omitempty"`
	Payments       []Payment       `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
	Subscription   *Subscription   `gorm:"foreignKey:SubscriptionID" json:"subscription,omitempty"`
	Customer       *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
