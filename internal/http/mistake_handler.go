package http

import (
	"errors"

	"blunderlog/internal/core"
	"blunderlog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateMistake annotates a position in a stored game
func (h *HTTPHandler) CreateMistake(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidIDResponse(c, "gameId")
	}

	req, ok := c.Locals("validatedBody").(*core.CreateMistakeRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "invalid request body",
			Code:  core.ErrInvalidRequest,
		})
	}

	mistake, err := h.svc.RecordMistake(gameID, *req)
	if err != nil {
		return respondError(c, err, core.ErrGameNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(mistake)
}

// ListMistakes returns annotations newest first, with optional filters
func (h *HTTPHandler) ListMistakes(c *fiber.Ctx) error {
	gameID := c.Query("gameId")
	if gameID != "" && !isValidUUID(gameID) {
		return invalidIDResponse(c, "gameId")
	}
	tag := c.Query("tag")
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	mistakes, err := h.svc.ListMistakes(gameID, tag, limit, offset)
	if err != nil {
		return respondError(c, err, core.ErrMistakeNotFound)
	}
	return c.JSON(mistakes)
}

// GetMistake returns one annotation
func (h *HTTPHandler) GetMistake(c *fiber.Ctx) error {
	mistakeID := c.Params("mistakeId")
	if !isValidUUID(mistakeID) {
		return invalidIDResponse(c, "mistakeId")
	}

	mistake, err := h.svc.GetMistake(mistakeID)
	if err != nil {
		return respondError(c, err, core.ErrMistakeNotFound)
	}
	return c.JSON(mistake)
}

// UpdateMistake patches annotation text; the position snapshot is immutable
func (h *HTTPHandler) UpdateMistake(c *fiber.Ctx) error {
	mistakeID := c.Params("mistakeId")
	if !isValidUUID(mistakeID) {
		return invalidIDResponse(c, "mistakeId")
	}

	req, ok := c.Locals("validatedBody").(*core.UpdateMistakeRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "invalid request body",
			Code:  core.ErrInvalidRequest,
		})
	}

	mistake, err := h.svc.UpdateMistake(mistakeID, *req)
	if err != nil {
		return respondError(c, err, core.ErrMistakeNotFound)
	}
	return c.JSON(mistake)
}

// DeleteMistake removes one annotation
func (h *HTTPHandler) DeleteMistake(c *fiber.Ctx) error {
	mistakeID := c.Params("mistakeId")
	if !isValidUUID(mistakeID) {
		return invalidIDResponse(c, "mistakeId")
	}

	if err := h.svc.DeleteMistake(mistakeID); err != nil {
		return respondError(c, err, core.ErrMistakeNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTags aggregates annotation frequency per tag
func (h *HTTPHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.svc.TagCounts()
	if err != nil {
		return respondError(c, err, core.ErrMistakeNotFound)
	}
	return c.JSON(tags)
}

// GenerateInsight summarizes recent annotations through the LLM
func (h *HTTPHandler) GenerateInsight(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedBody").(*core.InsightRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "invalid request body",
			Code:  core.ErrInvalidRequest,
		})
	}

	resp, err := h.svc.SummarizeMistakes(c.UserContext(), *req)
	if err != nil {
		if errors.Is(err, service.ErrInsightUnavailable) {
			return respondError(c, err, core.ErrMistakeNotFound)
		}
		// Upstream LLM failure; the journal data itself is fine.
		return c.Status(fiber.StatusBadGateway).JSON(core.ErrorResponse{
			Error:   "insight generation failed",
			Code:    core.ErrInsightFailed,
			Details: err.Error(),
		})
	}
	return c.JSON(resp)
}
