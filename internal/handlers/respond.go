package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/subvault/billing-backend/internal/apperrors"
	"github.com/subvault/billing-backend/internal/dto"
)

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(dto.Response{Success: true, Data: data})
}

func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Data: data})
}

// fail translates a service error into the envelope. Business errors keep
// their message and mapped status; anything else is logged and answered
// with a generic 500 so callers can tell "try again" from "bad request".
func fail(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	}
	return c.Status(status).JSON(dto.Response{
		Success: false,
		Message: apperrors.MessageOf(err),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: message})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{Success: false, Message: "Unauthorized"})
}
