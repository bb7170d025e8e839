package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/subvault/billing-backend/internal/apperrors"
	"github.com/subvault/billing-backend/internal/config"
	"github.com/subvault/billing-backend/internal/models"
	"github.com/subvault/billing-backend/internal/scope"
)

// InvoiceService derives invoices from subscription lines and runs the
// DRAFT → CONFIRMED → PAID / CANCELLED invoice state machine.
type InvoiceService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewInvoiceService(db *gorm.DB, cfg *config.Config) *InvoiceService {
	return &InvoiceService{db: db, cfg: cfg}
}

// GenerateForSubscription creates a DRAFT invoice whose subtotal is the
// exact decimal sum of the subscription's lines. Tax and discount are zero
// on this path; the purchase flow populates them itself.
func (s *InvoiceService) GenerateForSubscription(subscriptionID uint, dueDate string) (*models.Invoice, error) {
	var subscription models.Subscription
	err := s.db.Preload("Lines").First(&subscription, subscriptionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("subscription %d not found", subscriptionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	// An invoice is never generated for an empty subscription; every
	// downstream payment computation assumes a non-zero line basis.
	if len(subscription.Lines) == 0 {
		return nil, apperrors.Validation("subscription %s has no lines to invoice", subscription.Number)
	}

	subtotal := decimal.Zero
	for _, line := range subscription.Lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	due := time.Now().AddDate(0, 0, s.cfg.InvoiceDueDays)
	if dueDate != "" {
		parsed, err := parseDate(dueDate)
		if err != nil {
			return nil, apperrors.Validation("due_date %q is not a valid date", dueDate)
		}
		due = parsed
	}

	invoice := models.Invoice{
		Number:         documentNumber(invoicePrefix),
		SubscriptionID: subscription.ID,
		CustomerID:     subscription.CustomerID,
		Status:         models.InvoiceDraft,
		Subtotal:       subtotal,
		TaxTotal:       decimal.Zero,
		DiscountTotal:  decimal.Zero,
		TotalAmount:    subtotal,
		DueDate:        due,
	}

	if err := s.db.Create(&invoice).Error; err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	slog.Info("invoice generated", "number", invoice.Number, "subscription", subscription.Number, "total", invoice.TotalAmount.String())
	return &invoice, nil
}

// List returns all invoices for staff actors and only the actor's own for
// customers.
func (s *InvoiceService) List(actor scope.Actor) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.Scopes(scope.ForActor(actor)).
		Preload("Payments").
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// GetByID returns one invoice with its payments, ownership-scoped.
func (s *InvoiceService) GetByID(id uint, actor scope.Actor) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Preload("Payments").First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("invoice %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}

	if !actor.Owns(invoice.CustomerID) {
		return nil, apperrors.Forbidden("invoice %d belongs to another customer", id)
	}

	return &invoice, nil
}

// UpdateStatus moves an invoice to any of the four named states.
func (s *InvoiceService) UpdateStatus(id uint, status string) (*models.Invoice, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !validInvoiceStatus(status) {
		return nil, apperrors.Validation("invalid invoice status %q", status)
	}

	var invoice models.Invoice
	if err := s.db.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("invoice %d not found", id)
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}

	if err := s.db.Model(&invoice).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	slog.Info("invoice status updated", "number", invoice.Number, "status", status)
	return &invoice, nil
}

func validInvoiceStatus(status string) bool {
	for _, st := range models.InvoiceStatuses {
		if status == st {
			return true
		}
	}
	return false
}
