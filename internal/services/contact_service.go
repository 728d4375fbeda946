package services

import (
	"context"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ContactPublisher announces stored contact messages.
type ContactPublisher interface {
	PublishContactSubmitted(ctx context.Context, event rabbitmq.ContactEvent) error
}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

// PublishContactSubmitted does nothing.
func (NoopPublisher) PublishContactSubmitted(context.Context, rabbitmq.ContactEvent) error {
	return nil
}

// ContactService handles contact form submissions.
type ContactService struct {
	store     repositories.Storage
	publisher ContactPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewContactService creates a new ContactService. A nil publisher disables
// event publishing.
func NewContactService(store repositories.Storage, publisher ContactPublisher, logger zerolog.Logger) *ContactService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &ContactService{
		store:     store,
		publisher: publisher,
		logger:    logger.With().Str("service", "contact").Logger(),
		now:       time.Now,
	}
}

// SubmitContactMessage stores the message and then publishes a
// contact.submitted event. The input must already be validated.
func (s *ContactService) SubmitContactMessage(ctx context.Context, in models.InsertContactMessage) (*models.ContactMessage, error) {
	created, err := s.store.CreateContactMessage(ctx, in)
	if err != nil {
		return nil, err
	}
	metrics.ContactMessageAccepted()

	event := rabbitmq.ContactEvent{
		ID:         uuid.NewString(),
		Type:       rabbitmq.ContactSubmittedEvent,
		OccurredAt: s.now().UTC(),
		MessageID:  created.ID,
		Name:       created.Name,
		Email:      created.Email,
		Message:    created.Message,
	}
	// The row is already stored, so a broker failure does not fail the request.
	if err := s.publisher.PublishContactSubmitted(ctx, event); err != nil {
		s.logger.Warn().Err(err).Int("message_id", created.ID).Msg("failed to publish contact event")
	}

	s.logger.Info().Int("message_id", created.ID).Msg("contact message stored")
	return created, nil
}
