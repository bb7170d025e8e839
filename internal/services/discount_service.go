package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/subvault/billing-backend/internal/apperrors"
	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// DiscountService validates coupon codes and computes discount amounts.
type DiscountService struct {
	db *gorm.DB
}

func NewDiscountService(db *gorm.DB) *DiscountService {
	return &DiscountService{db: db}
}

// ValidateCoupon checks a coupon against the purchase amount and computes
// the discount. Amounts are rounded half away from zero to 2 decimals.
// It never increments the usage counter; Redeem does that inside the
// purchase transaction.
func (s *DiscountService) ValidateCoupon(code string, purchaseAmount decimal.Decimal) (*dto.CouponResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperrors.Validation("coupon code is required")
	}

	now := time.Now()
	var discount models.Discount
	err := s.db.
		Where("active = ?", true).
		Where("coupon_code = ?", code).
		Where("starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		First(&discount).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("invalid or expired coupon")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}

	if discount.UsageLimit != nil && discount.UsedCount >= *discount.UsageLimit {
		return nil, apperrors.Conflict("coupon %s has reached its usage limit", code)
	}

	if discount.MinPurchase != nil && purchaseAmount.LessThan(*discount.MinPurchase) {
		shortfall := discount.MinPurchase.Sub(purchaseAmount)
		return nil, apperrors.Validation(
			"minimum purchase of %s required for coupon %s (short by %s)",
			discount.MinPurchase.StringFixed(2), code, shortfall.StringFixed(2),
		)
	}

	var amount decimal.Decimal
	switch discount.Type {
	case models.DiscountFixed:
		// A fixed discount never exceeds the purchase amount.
		amount = decimal.Min(discount.Value, purchaseAmount)
	default:
		amount = purchaseAmount.Mul(discount.Value).Div(oneHundred)
	}
	amount = amount.Round(2)

	return &dto.CouponResult{
		ID:             discount.ID,
		Name:           discount.Name,
		CouponCode:     code,
		Type:           discount.Type,
		Value:          discount.Value,
		DiscountAmount: amount,
		Valid:          true,
	}, nil
}

// AvailableCoupons returns up to 10 active, currently valid, coded
// discounts with remaining usage, highest value first.
func (s *DiscountService) AvailableCoupons() ([]models.Discount, error) {
	now := time.Now()
	var discounts []models.Discount
	err := s.db.
		Where("active = ?", true).
		Where("coupon_code IS NOT NULL").
		Where("starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		Order("value DESC").
		Limit(10).
		Find(&discounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return discounts, nil
}

// Redeem increments the discount's usage counter inside the caller's
// transaction. The guard re-checks the limit so two concurrent
// redemptions cannot both consume the last use.
func (s *DiscountService) Redeem(tx *gorm.DB, discountID uint) error {
	result := tx.Model(&models.Discount{}).
		Where("id = ?", discountID).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to redeem coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.Conflict("coupon has reached its usage limit")
	}
	return nil
}
