package scope

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/subvault/billing-backend/internal/models"
)

// Actor is the authenticated identity a request runs as.
type Actor struct {
	CustomerID uint
	Role       string
}

// IsStaff reports whether the actor may see records of any customer.
func (a Actor) IsStaff() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleStaff
}

// Owns reports whether the actor may access a record owned by customerID.
func (a Actor) Owns(customerID uint) bool {
	return a.IsStaff() || a.CustomerID == customerID
}

// GetActor extracts the actor from JWT claims in the Fiber context.
func GetActor(c *fiber.Ctx) (Actor, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Actor{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Actor{}, errors.New("missing sub claim")
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return Actor{}, errors.New("malformed sub claim")
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleCustomer
	}

	return Actor{CustomerID: uint(id), Role: role}, nil
}
