package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BodyField is reported when the request body as a whole cannot be decoded.
const BodyField = "body"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Response renders the error as the 400 response body.
func (e *ValidationError) Response() ValidationErrorResponse {
	return ValidationErrorResponse{Message: e.Message, Field: e.Field}
}

// Validate checks v against its validate tags and returns the first
// violation, or nil when v is valid.
func Validate(v any) *ValidationError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: BodyField, Message: err.Error()}
	}
	fe := verrs[0]
	field := fieldPath(fe.Namespace())
	return &ValidationError{Field: field, Message: message(field, fe)}
}

// fieldPath drops the root struct name from a validator namespace, leaving
// the dotted JSON path.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}

// DecodeError converts a JSON decoding failure into a ValidationError.
func DecodeError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &ValidationError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value),
		}
	}
	return &ValidationError{Field: BodyField, Message: "Request body must be a valid JSON object"}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Ptr:
		return jsonKind(t.Elem())
	default:
		return "object"
	}
}

// ParseID parses the :id path parameter.
func ParseID(raw string) (int, *ValidationError) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: "id", Message: "id must be an integer"}
	}
	return id, nil
}
