// Package client calls the storefront API and checks every response against
// the contract before handing it back.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/contract"
	"storefront/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DefaultTimeout bounds a single request when none is configured.
const DefaultTimeout = 10 * time.Second

var (
	// ErrRequestFailed is returned for a non-2xx response other than a 400.
	ErrRequestFailed = errors.New("request failed")

	// ErrContractViolation is returned when a response body does not match
	// its declared schema.
	ErrContractViolation = contract.ErrContractViolation
)

// APIError carries the message and field of a 400 response.
type APIError struct {
	Status  int
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Field)
}

// Client is a typed storefront API client.
type Client struct {
	baseURL string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListProducts fetches the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	status, body, err := c.do(ctx, contract.ListProducts, nil)
	if err != nil {
		return nil, err
	}
	if status != fiber.StatusOK {
		return nil, fmt.Errorf("%w: failed to load products: status %d", ErrRequestFailed, status)
	}
	return contract.ParseProducts(body)
}

// GetProduct fetches one product. A nil product with a nil error means the
// server has no product with that id.
func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	status, body, err := c.do(ctx, contract.GetProduct, nil, id)
	if err != nil {
		return nil, err
	}
	switch status {
	case fiber.StatusOK:
		return contract.ParseProduct(body)
	case fiber.StatusNotFound:
		if _, err := contract.ParseError(body); err != nil {
			return nil, err
		}
		return nil, nil
	case fiber.StatusBadRequest:
		return nil, apiError(status, body)
	default:
		return nil, fmt.Errorf("%w: failed to load product %d: status %d", ErrRequestFailed, id, status)
	}
}

// SubmitContact sends a contact message. A 400 is returned as *APIError with
// the server's message.
func (c *Client) SubmitContact(ctx context.Context, in models.InsertContactMessage) (*models.ContactMessage, error) {
	status, body, err := c.do(ctx, contract.SubmitContact, in)
	if err != nil {
		return nil, err
	}
	switch status {
	case fiber.StatusCreated:
		return contract.ParseContactMessage(body)
	case fiber.StatusBadRequest:
		return nil, apiError(status, body)
	default:
		return nil, fmt.Errorf("%w: failed to submit message: status %d", ErrRequestFailed, status)
	}
}

func apiError(status int, body []byte) error {
	resp, err := contract.ParseValidationError(body)
	if err != nil {
		return err
	}
	return &APIError{Status: status, Message: resp.Message, Field: resp.Field}
}

func (c *Client) do(ctx context.Context, op contract.Operation, payload any, params ...any) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return 0, nil, context.DeadlineExceeded
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(op.Method)
	req.SetRequestURI(op.URL(c.baseURL, params...))
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.Timeout(timeout)
	if payload != nil {
		agent.JSON(payload)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return 0, nil, fmt.Errorf("%s: %w", op.Name, err)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, nil, fmt.Errorf("%s: %w", op.Name, errors.Join(errs...))
	}
	return status, body, nil
}
