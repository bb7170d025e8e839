package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/subvault/billing-backend/internal/apperrors"
	"github.com/subvault/billing-backend/internal/config"
	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/models"
)

// PurchaseService is the self-service checkout: it composes coupon
// validation, subscription creation and invoice creation into one atomic
// purchase.
type PurchaseService struct {
	db        *gorm.DB
	discounts *DiscountService
	settings  *SettingsService
	cfg       *config.Config
}

func NewPurchaseService(db *gorm.DB, discounts *DiscountService, settings *SettingsService, cfg *config.Config) *PurchaseService {
	return &PurchaseService{db: db, discounts: discounts, settings: settings, cfg: cfg}
}

// PurchasePlan buys one billing period of a plan for the customer in a
// single transaction: an ACTIVE subscription with one product line and a
// PAID invoice either both exist afterwards or neither does. A supplied
// coupon is validated against the plan price and redeemed atomically with
// the purchase.
func (s *PurchaseService) PurchasePlan(customerID uint, req *dto.PurchaseRequest) (*dto.PurchaseResult, error) {
	planID, err := parseID(req.PlanID, "plan_id")
	if err != nil {
		return nil, err
	}
	productID, err := parseID(req.ProductID, "product_id")
	if err != nil {
		return nil, err
	}
	if req.PaymentMethod == "" {
		return nil, apperrors.Validation("payment_method is required")
	}
	method := models.NormalizeMethod(req.PaymentMethod)

	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("customer %d not found", customerID)
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	var plan models.RecurringPlan
	if err := s.db.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("plan %d not found", planID)
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if !plan.Active {
		return nil, apperrors.Conflict("plan %q is not active", plan.Name)
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product %d not found", productID)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if !product.Active {
		return nil, apperrors.Conflict("product %q is not active", product.Name)
	}

	discountAmount := decimal.Zero
	var coupon *dto.CouponResult
	if req.CouponCode != "" {
		coupon, err = s.discounts.ValidateCoupon(req.CouponCode, plan.Price)
		if err != nil {
			return nil, err
		}
		discountAmount = coupon.DiscountAmount
	}

	now := time.Now()
	expiration := plan.PeriodEnd(now)
	total := plan.Price.Sub(discountAmount)

	var subscription models.Subscription
	var invoice models.Invoice
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Instant purchase: the staff-facing DRAFT/QUOTATION/CONFIRMED
		// stages do not apply, the contract starts ACTIVE.
		subscription = models.Subscription{
			Number:         documentNumber(subscriptionPrefix),
			StartDate:      now,
			ExpirationDate: &expiration,
			Status:         models.SubscriptionActive,
			CustomerID:     customer.ID,
			PlanID:         plan.ID,
			Lines: []models.SubscriptionLine{{
				ProductID: product.ID,
				Quantity:  1,
				UnitPrice: plan.Price,
			}},
		}
		if err := tx.Create(&subscription).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		invoice = models.Invoice{
			Number:         documentNumber(invoicePrefix),
			SubscriptionID: subscription.ID,
			CustomerID:     customer.ID,
			Status:         models.InvoicePaid,
			Subtotal:       plan.Price,
			TaxTotal:       decimal.Zero,
			DiscountTotal:  discountAmount,
			TotalAmount:    total,
			DueDate:        now,
			PaidAt:         &now,
			PaymentMethod:  &method,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		if coupon != nil {
			if err := s.discounts.Redeem(tx, coupon.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.
		Preload("Lines.Product").
		Preload("Plan").
		Preload("Customer").
		First(&subscription, subscription.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload subscription: %w", err)
	}

	slog.Info("plan purchased",
		"customer_id", customer.ID,
		"plan", plan.Name,
		"subscription", subscription.Number,
		"invoice", invoice.Number,
		"total", total.String(),
	)

	return &dto.PurchaseResult{
		Subscription: &subscription,
		Invoice:      &invoice,
		Breakdown:    s.breakdown(plan.Price, discountAmount, total),
	}, nil
}

// breakdown computes the display-only charge summary. GST and platform
// fee come from billing settings (with config defaults) and are never
// persisted on the invoice.
func (s *PurchaseService) breakdown(subtotal, discount, total decimal.Decimal) dto.PurchaseBreakdown {
	gstRate := s.settings.DecimalValue(models.SettingGSTRate, s.cfg.GSTRatePercent)
	feeRate := s.settings.DecimalValue(models.SettingPlatformFeeRate, s.cfg.PlatformFeePercent)

	gst := total.Mul(gstRate).Div(oneHundred).Round(2)
	fee := total.Mul(feeRate).Div(oneHundred).Round(2)

	return dto.PurchaseBreakdown{
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
		GST:           gst,
		PlatformFee:   fee,
		AmountPayable: total.Add(gst).Add(fee),
	}
}

func parseID(raw, field string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("%s must be a positive integer", field)
	}
	return uint(id), nil
}
