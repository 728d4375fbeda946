package handlers

import (
	"storefront/internal/contract"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	service *services.ContactService
	logger  zerolog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("handler", "contact").Logger(),
	}
}

// RegisterRoutes registers the contact routes with the Fiber router.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	router.Post(contract.SubmitContact.Path, h.HandleSubmitContact)
}

// HandleSubmitContact validates and stores a contact message.
func (h *ContactHandler) HandleSubmitContact(c *fiber.Ctx) error {
	var in models.InsertContactMessage
	if err := c.BodyParser(&in); err != nil {
		verr := contract.DecodeError(err)
		h.logger.Debug().Err(err).Str("field", verr.Field).Msg("invalid contact body")
		return c.Status(fiber.StatusBadRequest).JSON(verr.Response())
	}

	if verr := contract.Validate(in); verr != nil {
		h.logger.Debug().Str("field", verr.Field).Msg("contact validation failed")
		return c.Status(fiber.StatusBadRequest).JSON(verr.Response())
	}

	created, err := h.service.SubmitContactMessage(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
