package handlers

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/subvault/billing-backend/internal/config"
	"github.com/subvault/billing-backend/internal/dto"
	"github.com/subvault/billing-backend/internal/models"
	"github.com/subvault/billing-backend/internal/scope"
	"github.com/subvault/billing-backend/internal/services"
)

type WebhookHandler struct {
	paymentService *services.PaymentService
	cfg            *config.Config
}

func NewWebhookHandler(paymentService *services.PaymentService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{paymentService: paymentService, cfg: cfg}
}

// HandleGateway records a gateway-confirmed payment against an invoice.
// Authenticated by a shared token; the payment runs as a staff actor
// because the gateway is not ownership-scoped.
func (h *WebhookHandler) HandleGateway(c *fiber.Ctx) error {
	if h.cfg.WebhookToken == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.Response{
			Success: false, Message: "Webhooks not configured",
		})
	}

	authHeader := c.Get("Authorization")
	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(h.cfg.WebhookToken)) != 1 {
		return unauthorized(c)
	}

	var webhook dto.GatewayWebhook
	if err := c.BodyParser(&webhook); err != nil {
		return badRequest(c, "Invalid webhook payload")
	}

	event := webhook.Event
	if event.Type != "payment.succeeded" {
		// Other event types are acknowledged and ignored.
		return ok(c, fiber.Map{"received": true})
	}

	result, err := h.paymentService.Create(&dto.CreatePaymentRequest{
		InvoiceID: event.InvoiceID,
		Amount:    event.Amount,
		Method:    event.Method,
		Reference: event.Reference,
	}, scope.Actor{Role: models.RoleStaff})
	if err != nil {
		slog.Error("webhook processing failed", "event_type", event.Type, "invoice_id", event.InvoiceID, "error", err)
		return fail(c, err)
	}

	slog.Info("webhook processed", "event_type", event.Type, "invoice", result.Invoice.Number)
	return ok(c, fiber.Map{"received": true})
}
