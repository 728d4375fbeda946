package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/models"
)

// ErrContractViolation is returned when a response body does not match the
// schema declared for its operation and status.
var ErrContractViolation = errors.New("response does not match the API contract")

var null = []byte("null")

func parse(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), null) {
		return fmt.Errorf("%w: empty body", ErrContractViolation)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrContractViolation, err)
	}
	return nil
}

func check(v any) error {
	if verr := Validate(v); verr != nil {
		return fmt.Errorf("%w: %v", ErrContractViolation, verr)
	}
	return nil
}

// ParseProducts decodes a ListProducts 200 body.
func ParseProducts(body []byte) ([]models.Product, error) {
	var products []models.Product
	if err := parse(body, &products); err != nil {
		return nil, err
	}
	for i := range products {
		if err := check(products[i]); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
	}
	return products, nil
}

// ParseProduct decodes a GetProduct 200 body.
func ParseProduct(body []byte) (*models.Product, error) {
	var p models.Product
	if err := parse(body, &p); err != nil {
		return nil, err
	}
	if err := check(p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseContactMessage decodes a SubmitContact 201 body.
func ParseContactMessage(body []byte) (*models.ContactMessage, error) {
	var m models.ContactMessage
	if err := parse(body, &m); err != nil {
		return nil, err
	}
	if err := check(m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseValidationError decodes a 400 body.
func ParseValidationError(body []byte) (*ValidationErrorResponse, error) {
	var r ValidationErrorResponse
	if err := parse(body, &r); err != nil {
		return nil, err
	}
	if err := check(r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ParseError decodes a 404 or 500 body.
func ParseError(body []byte) (*ErrorResponse, error) {
	var r ErrorResponse
	if err := parse(body, &r); err != nil {
		return nil, err
	}
	if err := check(r); err != nil {
		return nil, err
	}
	return &r, nil
}
