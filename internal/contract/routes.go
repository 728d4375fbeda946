// Package contract is the API surface shared by the HTTP handlers and the
// client: operation paths, input validation and response parsing.
package contract

import (
	"fmt"
	"net/http"
	"strings"
)

// Operation describes one API call.
type Operation struct {
	Name   string
	Method string
	Path   string
}

var (
	// ListProducts returns every product: 200 []models.Product.
	ListProducts = Operation{Name: "products.list", Method: http.MethodGet, Path: "/api/products"}

	// GetProduct returns one product: 200 models.Product, 404 ErrorResponse,
	// 400 ValidationErrorResponse for a malformed id.
	GetProduct = Operation{Name: "products.get", Method: http.MethodGet, Path: "/api/products/:id"}

	// SubmitContact stores a contact message: 201 models.ContactMessage,
	// 400 ValidationErrorResponse.
	SubmitContact = Operation{Name: "contact.submit", Method: http.MethodPost, Path: "/api/contact"}
)

// Operations lists every operation in the API.
var Operations = []Operation{ListProducts, GetProduct, SubmitContact}

// ErrorResponse is the body of a 404 or 500 response.
type ErrorResponse struct {
	Message string `json:"message" validate:"required"`
}

// ValidationErrorResponse is the body of a 400 response.
type ValidationErrorResponse struct {
	Message string `json:"message" validate:"required"`
	Field   string `json:"field"`
}

// URL expands the operation path against baseURL, substituting the
// :placeholders in order with params.
func (o Operation) URL(baseURL string, params ...any) string {
	segments := strings.Split(o.Path, "/")
	next := 0
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if next >= len(params) {
			break
		}
		segments[i] = fmt.Sprint(params[next])
		next++
	}
	return strings.TrimRight(baseURL, "/") + strings.Join(segments, "/")
}
