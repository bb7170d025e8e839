package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subvault/billing-backend/internal/models"
)

func TestActorOwns(t *testing.T) {
	customer := Actor{CustomerID: 7, Role: models.RoleCustomer}
	assert.True(t, customer.Owns(7))
	assert.False(t, customer.Owns(8))
	assert.False(t, customer.IsStaff())

	staff := Actor{CustomerID: 1, Role: models.RoleStaff}
	assert.True(t, staff.IsStaff())
	assert.True(t, staff.Owns(7))

	admin := Actor{Role: models.RoleAdmin}
	assert.True(t, admin.IsStaff())
	assert.True(t, admin.Owns(42))
}
