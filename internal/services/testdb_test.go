package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/subvault/billing-backend/internal/config"
	"github.com/subvault/billing-backend/internal/database"
	"github.com/subvault/billing-backend/internal/models"
)

// testDB opens an isolated in-memory SQLite database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see a different :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTAccessExpiry:    15 * time.Minute,
		JWTRefreshExpiry:   24 * time.Hour,
		GSTRatePercent:     "18",
		PlatformFeePercent: "2",
		InvoiceDueDays:     7,
	}
}

func seedCustomer(t *testing.T, db *gorm.DB, email, role string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:     "Test " + role,
		Email:    email,
		Password: "hashed",
		Role:     role,
		Active:   true,
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		Type:       "SERVICE",
		SalesPrice: mustDecimal(t, price),
		CostPrice:  mustDecimal(t, price).Div(decimal.NewFromInt(2)),
		Active:     active,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedPlan(t *testing.T, db *gorm.DB, name, price, period string, active bool) *models.RecurringPlan {
	t.Helper()
	plan := &models.RecurringPlan{
		Name:          name,
		Price:         mustDecimal(t, price),
		BillingPeriod: period,
		MinQuantity:   1,
		Active:        active,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func seedDiscount(t *testing.T, db *gorm.DB, d *models.Discount) *models.Discount {
	t.Helper()
	if d.StartsAt.IsZero() {
		d.StartsAt = time.Now().Add(-time.Hour)
	}
	require.NoError(t, db.Create(d).Error)
	return d
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }
