package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods.
const (
	MethodCash         = "CASH"
	MethodCard         = "CARD"
	MethodUPI          = "UPI"
	MethodBankTransfer = "BANK_TRANSFER"
	MethodOther        = "OTHER"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []string{
	MethodCash,
	MethodCard,
	MethodUPI,
	MethodBankTransfer,
	MethodOther,
}

// NormalizeMethod upper-cases the supplied method and falls back to OTHER
// for anything outside the known set.
func NormalizeMethod(method string) string {
	m := strings.ToUpper(strings.TrimSpace(method))
	for _, known := range PaymentMethods {
		if m == known {
			return m
		}
	}
	return MethodOther
}

// Payment is an immutable record of money received against one invoice.
// Payments are only ever appended, never updated or deleted.
type Payment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	InvoiceID uint            `gorm:"not null;index" json:"invoice_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method    string          `gorm:"size:20;not null;default:'OTHER'" json:"method"`
	Reference *string         `gorm:"size:255" json:"reference,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
