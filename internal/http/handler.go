package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"blunderlog/internal/core"
	"blunderlog/internal/replay"
	"blunderlog/internal/service"
	"blunderlog/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitRate = 10 // req/sec

// HTTPHandler handles HTTP requests and routes them to the service
type HTTPHandler struct {
	svc *service.Service
}

func NewHTTPHandler(svc *service.Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

func NewFiberApp(svc *service.Service, devMode bool) *fiber.App {
	h := NewHTTPHandler(svc)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	// Login: 10 req/min per IP
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: "10 login attempts per minute allowed",
			})
		},
	}), h.LoginHandler)

	// Journal routes with standard rate limiting
	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	// Content-Type validation for body-carrying requests
	api.Use(contentTypeValidator)

	// Body validation for known endpoints
	api.Use(validationMiddleware)

	// Everything below is the owner's journal
	api.Use(AuthRequired(svc.ValidateToken))

	api.Post("/games", h.ImportGame)
	api.Get("/games", h.ListGames)
	api.Get("/games/:gameId", h.GetGame)
	api.Patch("/games/:gameId", h.UpdateGame)
	api.Delete("/games/:gameId", h.DeleteGame)
	api.Get("/games/:gameId/positions/:ply", h.GetPosition)
	api.Get("/games/:gameId/move-number/:number", h.ResolveMoveNumber)
	api.Post("/games/:gameId/mistakes", h.CreateMistake)

	api.Get("/mistakes", h.ListMistakes)
	api.Get("/mistakes/:mistakeId", h.GetMistake)
	api.Put("/mistakes/:mistakeId", h.UpdateMistake)
	api.Delete("/mistakes/:mistakeId", h.DeleteMistake)

	api.Get("/tags", h.ListTags)
	api.Post("/insights", h.GenerateInsight)

	return app
}

// contentTypeValidator ensures body-carrying requests have application/json
func contentTypeValidator(c *fiber.Ctx) error {
	method := c.Method()
	if method == fiber.MethodPost || method == fiber.MethodPut || method == fiber.MethodPatch {
		contentType := c.Get("Content-Type")
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusBadRequest:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// respondError translates collaborator errors into the wire taxonomy.
// notFoundCode distinguishes which resource a 404 refers to.
func respondError(c *fiber.Ctx, err error, notFoundCode string) error {
	var parseErr *replay.ParseError
	var rangeErr *replay.IndexOutOfRangeError
	var replayErr *replay.ReplayError

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "not found",
			Code:  notFoundCode,
		})
	case errors.Is(err, storage.ErrDuplicateGame):
		return c.Status(fiber.StatusConflict).JSON(core.ErrorResponse{
			Error:   "game already imported",
			Code:    core.ErrDuplicateGame,
			Details: "a game with identical moves exists",
		})
	case errors.As(err, &parseErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(core.ErrorResponse{
			Error:   "movetext rejected",
			Code:    core.ErrParseFailed,
			Details: parseErr.Error(),
		})
	case errors.As(err, &rangeErr):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "ply index out of range",
			Code:    core.ErrIndexOutOfRange,
			Details: rangeErr.Error(),
		})
	case errors.As(err, &replayErr):
		// Stored movetext no longer replays; data corruption, not a client error.
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "stored game failed to replay",
			Code:  core.ErrReplayFailed,
		})
	case errors.Is(err, service.ErrInsightUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(core.ErrorResponse{
			Error:   "insight generation unavailable",
			Code:    core.ErrInsightFailed,
			Details: "no LLM endpoint configured",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	})
}

// Health check endpoint with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.GetStorageHealth(),
	})
}
