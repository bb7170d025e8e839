package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/scope"
	"github.com/subvault/billing-backend/internal/services"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	subscription, err := h.subscriptionService.Create(&req)
	if err != nil {
		return fail(c, err)
	}

	return created(c, subscription)
}

func (h *SubscriptionHandler) List(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return unauthorized(c)
	}

	subscriptions, err := h.subscriptionService.List(actor)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, subscriptions)
}

func (h *SubscriptionHandler) Get(c *fiber.Ctx) error {
	actor, err := scope.GetActor(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid subscription ID")
	}

	subscription, err := h.subscriptionService.GetByID(uint(id), actor)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, subscription)
}

func (h *SubscriptionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid subscription ID")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	subscription, err := h.subscriptionService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, subscription)
}
