package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/subvault/billing-backend/internal/apperrors"
	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/models"
	"github.com/subvault/billing-backend/internal/scope"
)

// PaymentService records payments and reconciles the owning invoice's
// status from the full payment history.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Create appends a payment and reconciles the invoice inside one
// transaction. The invoice row is locked for the duration so two
// concurrent payments cannot both read the same pre-update payment set.
// The paid total is always recomputed from every payment on record rather
// than incremented, so it stays consistent with the full history.
// Overpayment is accepted and recorded; the invoice simply becomes PAID.
func (s *PaymentService) Create(req *dto.CreatePaymentRequest, actor scope.Actor) (*dto.PaymentResult, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.Validation("amount must be a positive number")
	}
	method := models.NormalizeMethod(req.Method)

	var result dto.PaymentResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		err := lockForUpdate(tx).First(&invoice, req.InvoiceID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("invoice %d not found", req.InvoiceID)
		}
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		if !actor.Owns(invoice.CustomerID) {
			return apperrors.Forbidden("invoice %d belongs to another customer", req.InvoiceID)
		}

		payment := models.Payment{
			InvoiceID: invoice.ID,
			Amount:    req.Amount,
			Method:    method,
		}
		if req.Reference != "" {
			payment.Reference = &req.Reference
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		var payments []models.Payment
		if err := tx.Where("invoice_id = ?", invoice.ID).Find(&payments).Error; err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}

		totalPaid := decimal.Zero
		for _, p := range payments {
			totalPaid = totalPaid.Add(p.Amount)
		}

		changed := false
		if totalPaid.GreaterThanOrEqual(invoice.TotalAmount) {
			now := time.Now()
			invoice.Status = models.InvoicePaid
			invoice.PaidAt = &now
			invoice.PaymentMethod = &method
			changed = true
		} else if invoice.Status == models.InvoiceDraft {
			// First money received moves a draft out of drafting.
			invoice.Status = models.InvoiceConfirmed
			changed = true
		}

		if changed {
			if err := tx.Save(&invoice).Error; err != nil {
				return fmt.Errorf("failed to update invoice: %w", err)
			}
		}

		result = dto.PaymentResult{
			Payment:   &payment,
			Invoice:   &invoice,
			TotalPaid: totalPaid,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("payment recorded",
		"invoice", result.Invoice.Number,
		"amount", result.Payment.Amount.String(),
		"total_paid", result.TotalPaid.String(),
		"status", result.Invoice.Status,
	)
	return &result, nil
}

// List returns payments visible to the actor, scoped through the owning
// invoice's customer id.
func (s *PaymentService) List(actor scope.Actor) ([]models.Payment, error) {
	var payments []models.Payment
	q := s.db.Order("payments.created_at DESC")
	if !actor.IsStaff() {
		q = q.Joins("JOIN invoices ON invoices.id = payments.invoice_id").
			Where("invoices.customer_id = ?", actor.CustomerID)
	}
	if err := q.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// lockForUpdate takes a SELECT ... FOR UPDATE row lock on Postgres.
// SQLite (used in tests) has no row locks; its single writer serializes
// the read-sum-write sequence instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
