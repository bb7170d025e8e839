package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/subvault/billing-backend/internal/apperrors"
	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/models"
	"github.com/subvault/billing-backend/internal/scope"
)

// SubscriptionService manages the subscription lifecycle: creation with
// line items and the DRAFT → QUOTATION → CONFIRMED → ACTIVE → CLOSED
// state machine.
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Create validates and persists a new DRAFT subscription with its lines in
// one transaction. Unit prices default to the product's current sales
// price when omitted.
func (s *SubscriptionService) Create(req *dto.CreateSubscriptionRequest) (*models.Subscription, error) {
	if req.CustomerID == 0 {
		return nil, apperrors.Validation("customer_id is required")
	}
	if req.PlanID == 0 {
		return nil, apperrors.Validation("plan_id is required")
	}
	if len(req.Lines) == 0 {
		return nil, apperrors.Validation("at least one subscription line is required")
	}
	if req.StartDate == "" {
		return nil, apperrors.Validation("start_date is required")
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.Validation("start_date %q is not a valid date", req.StartDate)
	}

	var expirationDate *time.Time
	if req.ExpirationDate != "" {
		t, err := parseDate(req.ExpirationDate)
		if err != nil {
			return nil, apperrors.Validation("expiration_date %q is not a valid date", req.ExpirationDate)
		}
		expirationDate = &t
	}

	var customer models.Customer
	if err := s.db.First(&customer, req.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("customer %d not found", req.CustomerID)
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	var plan models.RecurringPlan
	if err := s.db.First(&plan, req.PlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("plan %d not found", req.PlanID)
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if !plan.Active {
		return nil, apperrors.Conflict("plan %q is not active", plan.Name)
	}

	lines := make([]models.SubscriptionLine, 0, len(req.Lines))
	for i, lr := range req.Lines {
		if lr.Quantity < 1 {
			return nil, apperrors.Validation("line %d: quantity must be at least 1", i+1)
		}

		var product models.Product
		if err := s.db.First(&product, lr.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("product %d not found", lr.ProductID)
			}
			return nil, fmt.Errorf("failed to load product: %w", err)
		}
		if !product.Active {
			return nil, apperrors.Conflict("product %q is not active", product.Name)
		}

		unitPrice := product.SalesPrice
		if lr.UnitPrice != nil {
			unitPrice = *lr.UnitPrice
		}

		lines = append(lines, models.SubscriptionLine{
			ProductID: lr.ProductID,
			Quantity:  lr.Quantity,
			UnitPrice: unitPrice,
		})
	}

	var paymentTerms *string
	if req.PaymentTerms != "" {
		paymentTerms = &req.PaymentTerms
	}

	// DRAFT is set explicitly rather than relying on the column default.
	subscription := models.Subscription{
		Number:         documentNumber(subscriptionPrefix),
		StartDate:      startDate,
		ExpirationDate: expirationDate,
		PaymentTerms:   paymentTerms,
		Status:         models.SubscriptionDraft,
		CustomerID:     req.CustomerID,
		PlanID:         req.PlanID,
		Lines:          lines,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&subscription).Error
	}); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	slog.Info("subscription created", "number", subscription.Number, "customer_id", subscription.CustomerID)
	return &subscription, nil
}

// List returns all subscriptions for staff actors and only the actor's own
// for customers.
func (s *SubscriptionService) List(actor scope.Actor) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := s.db.Scopes(scope.ForActor(actor)).
		Preload("Lines").
		Preload("Plan").
		Order("created_at DESC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subscriptions, nil
}

// GetByID returns one subscription with its lines, plan and customer.
// Customers requesting a subscription they do not own get Forbidden.
func (s *SubscriptionService) GetByID(id uint, actor scope.Actor) (*models.Subscription, error) {
	var subscription models.Subscription
	err := s.db.
		Preload("Lines.Product").
		Preload("Plan").
		Preload("Customer").
		First(&subscription, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("subscription %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	if !actor.Owns(subscription.CustomerID) {
		return nil, apperrors.Forbidden("subscription %d belongs to another customer", id)
	}

	return &subscription, nil
}

// UpdateStatus moves a subscription to any of the five named states.
func (s *SubscriptionService) UpdateStatus(id uint, status string) (*models.Subscription, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !validSubscriptionStatus(status) {
		return nil, apperrors.Validation("invalid subscription status %q", status)
	}

	var subscription models.Subscription
	if err := s.db.First(&subscription, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("subscription %d not found", id)
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	if err := s.db.Model(&subscription).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update subscription status: %w", err)
	}

	slog.Info("subscription status updated", "number", subscription.Number, "status", status)
	return &subscription, nil
}

func validSubscriptionStatus(status string) bool {
	for _, st := range models.SubscriptionStatuses {
		if status == st {
			return true
		}
	}
	return false
}
