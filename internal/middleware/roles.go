package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/subvault/billing-backend/internal/config"
	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/models"
	"github.com/subvault/billing-backend/internal/scope"
)

// StaffRequired lets admin and internal staff through; self-service
// customers are rejected.
func StaffRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := scope.GetActor(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
				Success: false, Message: "Unauthorized",
			})
		}
		if !actor.IsStaff() {
			return c.Status(fiber.StatusForbidden).JSON(dto.Response{
				Success: false, Message: "Staff access required",
			})
		}
		return c.Next()
	}
}

// AdminRequired checks, in order:
// 1. Config-based admin token / admin emails
// 2. DB-based customer Role field
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		// Check admin token header
		if cfg.AdminToken != "" {
			if c.Get("X-Admin-Token") == cfg.AdminToken {
				return c.Next()
			}
		}

		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
				Success: false, Message: "Unauthorized",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
				Success: false, Message: "Invalid claims",
			})
		}

		email, _ := claims["email"].(string)
		if contains(adminEmails, email) {
			return c.Next()
		}

		if actor, err := scope.GetActor(c); err == nil {
			var customer models.Customer
			if err := db.First(&customer, actor.CustomerID).Error; err == nil {
				if customer.Role == models.RoleAdmin {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.Response{
			Success: false, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
