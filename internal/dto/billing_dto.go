package dto

import (
	"github.com/shopspring/decimal"

	"github.com/subvault/billing-backend/internal/models"
)

type SubscriptionLineRequest struct {
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type CreateSubscriptionRequest struct {
	CustomerID     uint                      `json:"customer_id"`
	PlanID         uint                      `json:"plan_id"`
	StartDate      string                    `json:"start_date"`
	ExpirationDate string                    `json:"expiration_date,omitempty"`
	PaymentTerms   string                    `json:"payment_terms,omitempty"`
	Lines          []SubscriptionLineRequest `json:"lines"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type GenerateInvoiceRequest struct {
	SubscriptionID uint   `json:"subscription_id"`
	DueDate        string `json:"due_date,omitempty"`
}

type CreatePaymentRequest struct {
	InvoiceID uint            `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
}

type PaymentResult struct {
	Payment   *models.Payment `json:"payment"`
	Invoice   *models.Invoice `json:"invoice"`
	TotalPaid decimal.Decimal `json:"total_paid"`
}

type ValidateCouponRequest struct {
	CouponCode string          `json:"coupon_code"`
	Amount     decimal.Decimal `json:"amount"`
}

type CouponResult struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	CouponCode     string          `json:"coupon_code"`
	Type           string          `json:"type"`
	Value          decimal.Decimal `json:"value"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Valid          bool            `json:"valid"`
}

type PurchaseRequest struct {
	PlanID        string `json:"plan_id"`
	ProductID     string `json:"product_id"`
	PaymentMethod string `json:"payment_method"`
	CouponCode    string `json:"coupon_code,omitempty"`
}

// PurchaseBreakdown is the display-only charge breakdown returned with a
// purchase. GST and platform fee are presentation values, never persisted.
type PurchaseBreakdown struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	GST           decimal.Decimal `json:"gst"`
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	AmountPayable decimal.Decimal `json:"amount_payable"`
}

type PurchaseResult struct {
	Subscription *models.Subscription `json:"subscription"`
	Invoice      *models.Invoice      `json:"invoice"`
	Breakdown    PurchaseBreakdown    `json:"breakdown"`
}
