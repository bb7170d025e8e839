package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/services"
)

type CouponHandler struct {
	discountService *services.DiscountService
}

func NewCouponHandler(discountService *services.DiscountService) *CouponHandler {
	return &CouponHandler{discountService: discountService}
}

func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.discountService.ValidateCoupon(req.CouponCode, req.Amount)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, result)
}

func (h *CouponHandler) Available(c *fiber.Ctx) error {
	discounts, err := h.discountService.AvailableCoupons()
	if err != nil {
		return fail(c, err)
	}

	return ok(c, discounts)
}
