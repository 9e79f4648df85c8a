package http

import (
	"errors"

	"blunderlog/internal/core"
	"blunderlog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LoginHandler verifies the owner passphrase and issues a session token.
// Registered before the group validation middleware, so it parses its own
// body.
func (h *HTTPHandler) LoginHandler(c *fiber.Ctx) error {
	var req core.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid request body",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}
	if req.Passphrase == "" {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrInvalidRequest,
			Details: "Passphrase is required",
		})
	}

	resp, err := h.svc.Login(req.Passphrase)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(core.ErrorResponse{
				Error: "invalid credentials",
				Code:  core.ErrUnauthorized,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "failed to generate token",
			Code:  core.ErrInternalError,
		})
	}

	return c.JSON(resp)
}
