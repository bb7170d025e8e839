package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/scope"
	"github.com/subvault/billing-backend/internal/services"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.SubscriptionID == 0 {
		return badRequest(c, "subscription_id is required")
	}

	invoice, err := h.invoiceService.GenerateForSubscription(req.SubscriptionID, req.DueDate)
	if err != nil {
		return fail(c, err)
	}

	return created(c, invoice)
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return unauthorized(c)
	}

	invoices, err := h.invoiceService.List(actor)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, invoices)
}

func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid invoice ID")
	}

	invoice, err := h.invoiceService.GetByID(uint(id), actor)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, invoice)
}

func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid invoice ID")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	invoice, err := h.invoiceService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, invoice)
}
