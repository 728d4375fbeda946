// Package app assembles the storefront HTTP application.
package app

import (
	"context"
	"errors"
	"time"

	"storefront/internal/contract"
	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// HealthPath serves the liveness and database check.
const HealthPath = "/health"

// InternalErrorMessage is the body message of every unhandled failure.
const InternalErrorMessage = "Internal Server Error"

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the application is built from.
type Deps struct {
	Storage        repositories.Storage
	Publisher      services.ContactPublisher
	Logger         zerolog.Logger
	MetricsEnabled bool
}

// New builds the fiber app with middleware, API routes, health and metrics.
func New(deps Deps) *fiber.App {
	logger := deps.Logger.With().Str("component", "http").Logger()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))
	if deps.MetricsEnabled {
		app.Use(metrics.Middleware())
		app.Get(metrics.Path, metrics.Handler())
	}

	app.Get(HealthPath, healthHandler(deps.Storage))

	productService := services.NewProductService(deps.Storage, deps.Logger)
	contactService := services.NewContactService(deps.Storage, deps.Publisher, deps.Logger)

	handlers.NewProductHandler(productService, deps.Logger).RegisterRoutes(app)
	handlers.NewContactHandler(contactService, deps.Logger).RegisterRoutes(app)

	return app
}

func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(contract.ErrorResponse{Message: fe.Message})
		}

		logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(contract.ErrorResponse{Message: InternalErrorMessage})
	}
}

func healthHandler(store repositories.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, database, code := "healthy", "up", fiber.StatusOK
		if pinger, ok := store.(Pinger); ok {
			if err := pinger.Ping(c.UserContext()); err != nil {
				status, database, code = "unhealthy", "down", fiber.StatusServiceUnavailable
			}
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
		})
	}
}
