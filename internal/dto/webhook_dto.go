package dto

import "github.com/shopspring/decimal"

type GatewayWebhook struct {
	APIVersion string       `json:"api_version"`
	Event      GatewayEvent `json:"event"`
}

type GatewayEvent struct {
	Type      string          `json:"type"`
	ID        string          `json:"id"`
	InvoiceID uint            `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Currency  string          `json:"currency"`
}
