package services

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/subvault/billing-backend/internal/apperrors"
	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/models"
)

func newPurchaseService(db *gorm.DB) *PurchaseService {
	return NewPurchaseService(db, NewDiscountService(db), NewSettingsService(db), testConfig())
}

func TestPurchasePlan(t *testing.T) {
	db := testDB(t)
	svc := newPurchaseService(db)

	customer := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	plan := seedPlan(t, db, "Pro Monthly", "100.00", models.PeriodMonthly, true)
	product := seedProduct(t, db, "Pro Seat", "100.00", true)

	res, err := svc.PurchasePlan(customer.ID, &dto.PurchaseRequest{
		PlanID:        strconv.Itoa(int(plan.ID)),
		ProductID:     strconv.Itoa(int(product.ID)),
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	sub := res.Subscription
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Equal(t, customer.ID, sub.CustomerID)
	require.Len(t, sub.Lines, 1)
	assert.Equal(t, 1, sub.Lines[0].Quantity)
	assert.Equal(t, "100.00", sub.Lines[0].UnitPrice.StringFixed(2))
	require.NotNil(t, sub.ExpirationDate)
	wantEnd := sub.StartDate.AddDate(0, 1, 0)
	assert.WithinDuration(t, wantEnd, *sub.ExpirationDate, time.Second)

	inv := res.Invoice
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assert.Equal(t, sub.ID, inv.SubscriptionID)
	assert.Equal(t, "100.00", inv.TotalAmount.StringFixed(2))
	require.NotNil(t, inv.PaidAt)
	require.NotNil(t, inv.PaymentMethod)
	assert.Equal(t, models.MethodCard, *inv.PaymentMethod)

	// Breakdown with the default 18% GST and 2% platform fee. Neither is
	// persisted on the invoice.
	assert.Equal(t, "100.00", res.Breakdown.Total.StringFixed(2))
	assert.Equal(t, "18.00", res.Breakdown.GST.StringFixed(2))
	assert.Equal(t, "2.00", res.Breakdown.PlatformFee.StringFixed(2))
	assert.Equal(t, "120.00", res.Breakdown.AmountPayable.StringFixed(2))
	assert.Equal(t, "0.00", inv.TaxTotal.StringFixed(2))
}

func TestPurchasePlanPeriodEnds(t *testing.T) {
	db := testDB(t)
	svc := newPurchaseService(db)

	customer := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	product := seedProduct(t, db, "Seat", "10.00", true)

	cases := []struct {
		period string
		want   func(from time.Time) time.Time
	}{
		{models.PeriodDaily, func(f time.Time) time.Time { return f.AddDate(0, 0, 1) }},
		{models.PeriodWeekly, func(f time.Time) time.Time { return f.AddDate(0, 0, 7) }},
		{models.PeriodMonthly, func(f time.Time) time.Time { return f.AddDate(0, 1, 0) }},
		{models.PeriodYearly, func(f time.Time) time.Time { return f.AddDate(1, 0, 0) }},
	}

	for _, tc := range cases {
		t.Run(tc.period, func(t *testing.T) {
			plan := seedPlan(t, db, "Plan "+tc.period, "10.00", tc.period, true)
			res, err := svc.PurchasePlan(customer.ID, &dto.PurchaseRequest{
				PlanID:        strconv.Itoa(int(plan.ID)),
				ProductID:     strconv.Itoa(int(product.ID)),
				PaymentMethod: "CASH",
			})
			require.NoError(t, err)
			require.NotNil(t, res.Subscription.ExpirationDate)
			want := tc.want(res.Subscription.StartDate)
			assert.WithinDuration(t, want, *res.Subscription.ExpirationDate, time.Second)
		})
	}
}

func TestPurchasePlanWithCoupon(t *testing.T) {
	db := testDB(t)
	svc := newPurchaseService(db)

	customer := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	plan := seedPlan(t, db, "Pro Monthly", "200.00", models.PeriodMonthly, true)
	product := seedProduct(t, db, "Pro Seat", "200.00", true)
	coupon := seedDiscount(t, db, &models.Discount{
		Name: "Launch 25", CouponCode: strPtr("LAUNCH25"),
		Type: models.DiscountPercentage, Value: mustDecimal(t, "25"),
		UsageLimit: intPtr(10), Active: true,
	})

	res, err := svc.PurchasePlan(customer.ID, &dto.PurchaseRequest{
		PlanID:        strconv.Itoa(int(plan.ID)),
		ProductID:     strconv.Itoa(int(product.ID)),
		PaymentMethod: "UPI",
		CouponCode:    "launch25",
	})
	require.NoError(t, err)

	assert.Equal(t, "200.00", res.Invoice.Subtotal.StringFixed(2))
	assert.Equal(t, "50.00", res.Invoice.DiscountTotal.StringFixed(2))
	assert.Equal(t, "150.00", res.Invoice.TotalAmount.StringFixed(2))
	assert.Equal(t, "50.00", res.Breakdown.Discount.StringFixed(2))

	// The redemption is committed with the purchase.
	var reloaded models.Discount
	require.NoError(t, db.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 1, reloaded.UsedCount)
}

func TestPurchasePlanExhaustedCouponFailsWholePurchase(t *testing.T) {
	db := testDB(t)
	svc := newPurchaseService(db)

	customer := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	plan := seedPlan(t, db, "Pro Monthly", "100.00", models.PeriodMonthly, true)
	product := seedProduct(t, db, "Pro Seat", "100.00", true)
	seedDiscount(t, db, &models.Discount{
		Name: "Gone", CouponCode: strPtr("GONE"),
		Type: models.DiscountPercentage, Value: mustDecimal(t, "10"),
		UsageLimit: intPtr(3), UsedCount: 3, Active: true,
	})

	_, err := svc.PurchasePlan(customer.ID, &dto.PurchaseRequest{
		PlanID:        strconv.Itoa(int(plan.ID)),
		ProductID:     strconv.Itoa(int(product.ID)),
		PaymentMethod: "CASH",
		CouponCode:    "GONE",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	var subs, invs int64
	require.NoError(t, db.Model(&models.Subscription{}).Count(&subs).Error)
	require.NoError(t, db.Model(&models.Invoice{}).Count(&invs).Error)
	assert.Zero(t, subs)
	assert.Zero(t, invs)
}

func TestPurchasePlanValidation(t *testing.T) {
	db := testDB(t)
	svc := newPurchaseService(db)

	customer := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	plan := seedPlan(t, db, "Pro Monthly", "100.00", models.PeriodMonthly, true)
	product := seedProduct(t, db, "Pro Seat", "100.00", true)
	inactiveProduct := seedProduct(t, db, "Retired", "10.00", false)

	planID := strconv.Itoa(int(plan.ID))
	productID := strconv.Itoa(int(product.ID))

	cases := []struct {
		name string
		req  dto.PurchaseRequest
		kind apperrors.Kind
	}{
		{"non-numeric plan id", dto.PurchaseRequest{PlanID: "abc", ProductID: productID, PaymentMethod: "CASH"}, apperrors.KindValidation},
		{"zero product id", dto.PurchaseRequest{PlanID: planID, ProductID: "0", PaymentMethod: "CASH"}, apperrors.KindValidation},
		{"missing method", dto.PurchaseRequest{PlanID: planID, ProductID: productID}, apperrors.KindValidation},
		{"unknown plan", dto.PurchaseRequest{PlanID: "9999", ProductID: productID, PaymentMethod: "CASH"}, apperrors.KindNotFound},
		{"inactive product", dto.PurchaseRequest{PlanID: planID, ProductID: strconv.Itoa(int(inactiveProduct.ID)), PaymentMethod: "CASH"}, apperrors.KindConflict},
		{"bad coupon", dto.PurchaseRequest{PlanID: planID, ProductID: productID, PaymentMethod: "CASH", CouponCode: "NOSUCH"}, apperrors.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PurchasePlan(customer.ID, &tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.kind, apperrors.KindOf(err))
		})
	}
}

func TestPurchasePlanAtomicity(t *testing.T) {
	db := testDB(t)
	svc := newPurchaseService(db)

	customer := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	plan := seedPlan(t, db, "Pro Monthly", "100.00", models.PeriodMonthly, true)
	product := seedProduct(t, db, "Pro Seat", "100.00", true)

	// Force the invoice insert to fail after the subscription insert has
	// already happened inside the purchase transaction.
	err := db.Callback().Create().Before("gorm:create").Register("fail_invoices", func(tx *gorm.DB) {
		if tx.Statement.Table == "invoices" {
			tx.AddError(errors.New("injected insert failure"))
		}
	})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Callback().Create().Remove("fail_invoices"))
	}()

	_, err = svc.PurchasePlan(customer.ID, &dto.PurchaseRequest{
		PlanID:        strconv.Itoa(int(plan.ID)),
		ProductID:     strconv.Itoa(int(product.ID)),
		PaymentMethod: "CASH",
	})
	require.Error(t, err)

	// The subscription insert must have been rolled back with the invoice.
	var subs, lines int64
	require.NoError(t, db.Model(&models.Subscription{}).Count(&subs).Error)
	require.NoError(t, db.Model(&models.SubscriptionLine{}).Count(&lines).Error)
	assert.Zero(t, subs)
	assert.Zero(t, lines)
}

func TestPurchaseBreakdownUsesSettings(t *testing.T) {
	db := testDB(t)
	settings := NewSettingsService(db)
	svc := NewPurchaseService(db, NewDiscountService(db), settings, testConfig())

	customer := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	plan := seedPlan(t, db, "Pro Monthly", "100.00", models.PeriodMonthly, true)
	product := seedProduct(t, db, "Pro Seat", "100.00", true)

	// Admin-set rates override the config defaults.
	require.NoError(t, settings.Set(models.SettingGSTRate, "5", "decimal"))
	require.NoError(t, settings.Set(models.SettingPlatformFeeRate, "1.5", "decimal"))

	res, err := svc.PurchasePlan(customer.ID, &dto.PurchaseRequest{
		PlanID:        strconv.Itoa(int(plan.ID)),
		ProductID:     strconv.Itoa(int(product.ID)),
		PaymentMethod: "CASH",
	})
	require.NoError(t, err)

	assert.Equal(t, "5.00", res.Breakdown.GST.StringFixed(2))
	assert.Equal(t, "1.50", res.Breakdown.PlatformFee.StringFixed(2))
	assert.Equal(t, "106.50", res.Breakdown.AmountPayable.StringFixed(2))
}
