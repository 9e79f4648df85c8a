package http

import (
	"strconv"

	"blunderlog/internal/core"

	"github.com/gofiber/fiber/v2"
)

// ImportGame validates movetext by full replay and stores the game
func (h *HTTPHandler) ImportGame(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedBody").(*core.ImportGameRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "invalid request body",
			Code:  core.ErrInvalidRequest,
		})
	}

	game, err := h.svc.ImportGame(*req)
	if err != nil {
		return respondError(c, err, core.ErrGameNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

// ListGames returns stored games newest first
func (h *HTTPHandler) ListGames(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	games, err := h.svc.ListGames(limit, offset)
	if err != nil {
		return respondError(c, err, core.ErrGameNotFound)
	}
	return c.JSON(games)
}

// GetGame returns one stored game
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidIDResponse(c, "gameId")
	}

	game, err := h.svc.GetGame(gameID)
	if err != nil {
		return respondError(c, err, core.ErrGameNotFound)
	}
	return c.JSON(game)
}

// UpdateGame patches mutable game metadata
func (h *HTTPHandler) UpdateGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidIDResponse(c, "gameId")
	}

	req, ok := c.Locals("validatedBody").(*core.UpdateGameRequest)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "invalid request body",
			Code:  core.ErrInvalidRequest,
		})
	}

	game, err := h.svc.UpdateGameMeta(gameID, *req)
	if err != nil {
		return respondError(c, err, core.ErrGameNotFound)
	}
	return c.JSON(game)
}

// DeleteGame removes a game and its annotations
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidIDResponse(c, "gameId")
	}

	if err := h.svc.DeleteGame(gameID); err != nil {
		return respondError(c, err, core.ErrGameNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPosition replays a stored game up to a ply index
func (h *HTTPHandler) GetPosition(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidIDResponse(c, "gameId")
	}

	plyIndex, err := strconv.Atoi(c.Params("ply"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid ply index",
			Code:    core.ErrInvalidRequest,
			Details: "ply must be an integer",
		})
	}

	pos, err := h.svc.GetPosition(gameID, plyIndex)
	if err != nil {
		return respondError(c, err, core.ErrGameNotFound)
	}
	return c.JSON(pos)
}

// ResolveMoveNumber maps the journaling player's move number to a ply
func (h *HTTPHandler) ResolveMoveNumber(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidIDResponse(c, "gameId")
	}

	moveNumber, err := strconv.Atoi(c.Params("number"))
	if err != nil || moveNumber < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid move number",
			Code:    core.ErrInvalidRequest,
			Details: "move number must be a positive integer",
		})
	}

	res, err := h.svc.ResolveMoveNumber(gameID, moveNumber)
	if err != nil {
		return respondError(c, err, core.ErrGameNotFound)
	}
	return c.JSON(res)
}

func invalidIDResponse(c *fiber.Ctx, param string) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid identifier",
		Code:    core.ErrInvalidRequest,
		Details: param + " must be a UUID",
	})
}
