package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/scope"
	"github.com/subvault/billing-backend/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.InvoiceID == 0 {
		return badRequest(c, "invoice_id is required")
	}

	result, err := h.paymentService.Create(&req, actor)
	if err != nil {
		return fail(c, err)
	}

	return created(c, result)
}

func (h *PaymentHandler) List(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return unauthorized(c)
	}

	payments, err := h.paymentService.List(actor)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, payments)
}
