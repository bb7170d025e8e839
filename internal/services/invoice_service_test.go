package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/subvault/billing-backend/internal/apperrors"
	"github.com/subvault/billing-backend/internal/models"
	"github.com/subvault/billing-backend/internal/scope"
)

// seedSubscription creates a DRAFT subscription with the given lines
// against a fresh plan and product.
func seedSubscription(t *testing.T, db *gorm.DB, customerID uint, lines ...models.SubscriptionLine) *models.Subscription {
	t.Helper()

	plan := seedPlan(t, db, "Seed Plan", "99.00", models.PeriodMonthly, true)
	product := seedProduct(t, db, "Seed Product", "10.00", true)
	for i := range lines {
		if lines[i].ProductID == 0 {
			lines[i].ProductID = product.ID
		}
	}

	sub := &models.Subscription{
		Number:     documentNumber(subscriptionPrefix),
		StartDate:  time.Now(),
		Status:     models.SubscriptionDraft,
		CustomerID: customerID,
		PlanID:     plan.ID,
		Lines:      lines,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func line(t *testing.T, quantity int, unitPrice string) models.SubscriptionLine {
	t.Helper()
	return models.SubscriptionLine{Quantity: quantity, UnitPrice: mustDecimal(t, unitPrice)}
}

func TestGenerateInvoiceSubtotal(t *testing.T) {
	db := testDB(t)
	svc := NewInvoiceService(db, testConfig())

	customer := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	sub := seedSubscription(t, db, customer.ID, line(t, 2, "49.99"), line(t, 1, "19.99"))

	inv, err := svc.GenerateForSubscription(sub.ID, "")
	require.NoError(t, err)

	// 2 x 49.99 + 1 x 19.99 must be exactly 119.97, no float drift.
	assert.Equal(t, "119.97", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "119.97", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, "0.00", inv.TaxTotal.StringFixed(2))
	assert.Equal(t, "0.00", inv.DiscountTotal.StringFixed(2))
	assert.Equal(t, models.InvoiceDraft, inv.Status)
	assert.Equal(t, customer.ID, inv.CustomerID)
	assert.True(t, strings.HasPrefix(inv.Number, "INV-"))
}

func TestGenerateInvoiceDueDate(t *testing.T) {
	db := testDB(t)
	svc := NewInvoiceService(db, testConfig())

	customer := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	sub := seedSubscription(t, db, customer.ID, line(t, 1, "50.00"))

	inv, err := svc.GenerateForSubscription(sub.ID, "2026-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-12-31", inv.DueDate.Format("2006-01-02"))

	inv, err = svc.GenerateForSubscription(sub.ID, "")
	require.NoError(t, err)
	want := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	assert.Equal(t, want, inv.DueDate.Format("2006-01-02"))

	_, err = svc.GenerateForSubscription(sub.ID, "31/12/2026")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestGenerateInvoiceNoLines(t *testing.T) {
	db := testDB(t)
	svc := NewInvoiceService(db, testConfig())

	customer := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	sub := seedSubscription(t, db, customer.ID)

	_, err := svc.GenerateForSubscription(sub.ID, "")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.GenerateForSubscription(9999, "")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestInvoiceOwnershipScoping(t *testing.T) {
	db := testDB(t)
	svc := NewInvoiceService(db, testConfig())

	alice := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	bob := seedCustomer(t, db, "bob@example.com", models.RoleCustomer)

	aliceSub := seedSubscription(t, db, alice.ID, line(t, 1, "10.00"))
	bobSub := seedSubscription(t, db, bob.ID, line(t, 1, "20.00"))

	aliceInv, err := svc.GenerateForSubscription(aliceSub.ID, "")
	require.NoError(t, err)
	bobInv, err := svc.GenerateForSubscription(bobSub.ID, "")
	require.NoError(t, err)

	staff := scope.Actor{Role: models.RoleStaff}
	asAlice := scope.Actor{CustomerID: alice.ID, Role: models.RoleCustomer}

	all, err := svc.List(staff)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(asAlice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, aliceInv.ID, mine[0].ID)

	// Forbidden, not NotFound: the invoice exists, it is just not theirs.
	_, err = svc.GetByID(bobInv.ID, asAlice)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestInvoiceUpdateStatus(t *testing.T) {
	db := testDB(t)
	svc := NewInvoiceService(db, testConfig())

	customer := seedCustomer(t, db, "alice@example.com", models.RoleCustomer)
	sub := seedSubscription(t, db, customer.ID, line(t, 1, "50.00"))

	inv, err := svc.GenerateForSubscription(sub.ID, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(inv.ID, "cancelled")
	require.NoError(t, err)

	var reloaded models.Invoice
	require.NoError(t, db.First(&reloaded, inv.ID).Error)
	assert.Equal(t, models.InvoiceCancelled, reloaded.Status)

	_, err = svc.UpdateStatus(inv.ID, "VOID")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
