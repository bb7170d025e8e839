package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/subvault/billing-backend/internal/models"
)

// CatalogHandler serves the read-only storefront: active plans and
// products a customer can purchase.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

func (h *CatalogHandler) ListPlans(c *fiber.Ctx) error {
	var plans []models.RecurringPlan
	if err := h.db.Where("active = ?", true).Order("price ASC").Find(&plans).Error; err != nil {
		return fail(c, err)
	}
	return ok(c, plans)
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.db.Where("active = ?", true).Order("name ASC").Find(&products).Error; err != nil {
		return fail(c, err)
	}
	return ok(c, products)
}
