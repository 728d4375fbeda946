package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
)

// ContactSubmittedEvent is the type of the event published after a contact
// message is stored.
const ContactSubmittedEvent = "contact.submitted"

// ErrChannelUnavailable is returned when the client has no open channel.
var ErrChannelUnavailable = errors.New("RabbitMQ channel is not available")

// ContactEvent is the body published for every stored contact message.
type ContactEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	MessageID  int       `json:"messageId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  zerolog.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the queue.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareQueue(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger = logger.With().Str("component", "rabbitmq").Str("queue", cfg.Queue).Logger()
	logger.Info().Msg("RabbitMQ client connected and queue declared")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		logger:  logger,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// PublishContactSubmitted publishes a persistent JSON event to the queue.
func (c *Client) PublishContactSubmitted(ctx context.Context, event ContactEvent) error {
	if c == nil || c.channel == nil {
		return ErrChannelUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal contact event: %w", err)
	}

	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			MessageId:    event.ID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug().Str("event_id", event.ID).Int("message_id", event.MessageID).Msg("published contact event")
	return nil
}

// DecodeContactEvent parses a delivery body.
func DecodeContactEvent(body []byte) (ContactEvent, error) {
	var event ContactEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return ContactEvent{}, fmt.Errorf("failed to decode contact event: %w", err)
	}
	if event.Type != ContactSubmittedEvent {
		return ContactEvent{}, fmt.Errorf("unexpected event type %q", event.Type)
	}
	return event, nil
}

// ConsumeContactEvents delivers every queued contact event to handler until
// ctx is done. Handled messages are acked. Messages that cannot be decoded
// are rejected without requeue. Handler failures are requeued.
func (c *Client) ConsumeContactEvents(ctx context.Context, handler func(ContactEvent) error) error {
	if c == nil || c.channel == nil {
		return ErrChannelUnavailable
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info().Msg("waiting for contact events")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handleDelivery(msg, handler)
		}
	}
}

// acknowledger is the subset of amqp.Delivery used to settle a message.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Client) handleDelivery(msg amqp.Delivery, handler func(ContactEvent) error) {
	settle(c.logger, msg.DeliveryTag, msg.Body, &msg, handler)
}

func settle(logger zerolog.Logger, tag uint64, body []byte, ack acknowledger, handler func(ContactEvent) error) {
	event, err := DecodeContactEvent(body)
	if err != nil {
		logger.Error().Err(err).Uint64("delivery_tag", tag).Msg("dropping malformed message")
		if nackErr := ack.Nack(false, false); nackErr != nil {
			logger.Error().Err(nackErr).Uint64("delivery_tag", tag).Msg("failed to nack message")
		}
		return
	}

	if err := handler(event); err != nil {
		logger.Error().Err(err).Uint64("delivery_tag", tag).Msg("failed to process message, requeueing")
		if nackErr := ack.Nack(false, true); nackErr != nil {
			logger.Error().Err(nackErr).Uint64("delivery_tag", tag).Msg("failed to nack message")
		}
		return
	}

	if ackErr := ack.Ack(false); ackErr != nil {
		logger.Error().Err(ackErr).Uint64("delivery_tag", tag).Msg("failed to ack message")
	}
}
