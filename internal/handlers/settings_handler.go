package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/subvault/billing-backend/internal/services"
)

// SettingsHandler exposes admin-managed billing settings (GST rate,
// platform fee) used by the purchase breakdown.
type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) GetAll(c *fiber.Ctx) error {
	settings, err := h.settingsService.All()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, settings)
}

func (h *SettingsHandler) SetKey(c *fiber.Ctx) error {
	key := c.Params("key", "")
	if key == "" {
		return badRequest(c, "Key parameter is required")
	}

	var payload struct {
		Value string `json:"value"`
		Type  string `json:"type"` // string, bool, int, decimal
	}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if payload.Value == "" {
		return badRequest(c, "Value is required")
	}

	if err := h.settingsService.Set(key, payload.Value, payload.Type); err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{"key": key, "value": payload.Value})
}

func (h *SettingsHandler) DeleteKey(c *fiber.Ctx) error {
	key := c.Params("key", "")
	if key == "" {
		return badRequest(c, "Key parameter is required")
	}

	if err := h.settingsService.Delete(key); err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{"deleted": key})
}

// SeedDefaults inserts default display rates on first boot without
// overwriting admin-set values.
func (h *SettingsHandler) SeedDefaults(defaults map[string]string) {
	existing, err := h.settingsService.All()
	if err != nil {
		return
	}
	for key, value := range defaults {
		if _, found := existing[key]; !found {
			_ = h.settingsService.Set(key, value, "decimal")
		}
	}
}
