package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/scope"
	"github.com/subvault/billing-backend/internal/services"
)

type PurchaseHandler struct {
	purchaseService *services.PurchaseService
}

func NewPurchaseHandler(purchaseService *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Purchase is the self-service checkout: the authenticated customer buys
// one billing period of a plan in a single atomic action.
func (h *PurchaseHandler) Purchase(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.purchaseService.PurchasePlan(actor.CustomerID, &req)
	if err != nil {
		return fail(c, err)
	}

	return created(c, result)
}
