package contract

import (
	"encoding/json"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ContactFirstFailingField(t *testing.T) {
	tests := []struct {
		name          string
		input         models.InsertContactMessage
		expectedField string
	}{
		{
			name:          "Empty name",
			input:         models.InsertContactMessage{Name: "", Email: "a@b.c", Message: "hi"},
			expectedField: "name",
		},
		{
			name:          "Empty email",
			input:         models.InsertContactMessage{Name: "Ann", Email: "", Message: "hi"},
			expectedField: "email",
		},
		{
			name:          "Empty message",
			input:         models.InsertContactMessage{Name: "Ann", Email: "a@b.c", Message: ""},
			expectedField: "message",
		},
		{
			name:          "All empty reports name first",
			input:         models.InsertContactMessage{},
			expectedField: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := Validate(tt.input)
			require.NotNil(t, verr)
			assert.Equal(t, tt.expectedField, verr.Field)
			assert.Equal(t, tt.expectedField+" is required", verr.Message)
		})
	}
}

func TestValidate_ValidContact(t *testing.T) {
	verr := Validate(models.InsertContactMessage{Name: "Ann", Email: "not-an-email", Message: "hello"})
	assert.Nil(t, verr)
}

func TestValidate_InsertProduct(t *testing.T) {
	valid := models.InsertProduct{
		Name:        "Pain Relief Tablets",
		Description: "Fast-acting relief.",
		Price:       0,
		Category:    models.CategoryMedicine,
		ImageURL:    "https://example.com/p.jpg",
	}
	assert.Nil(t, Validate(valid))

	negative := valid
	negative.Price = -1
	verr := Validate(negative)
	require.NotNil(t, verr)
	assert.Equal(t, "price", verr.Field)
	assert.Contains(t, verr.Message, "greater than or equal to 0")

	badURL := valid
	badURL.ImageURL = "not a url"
	verr = Validate(badURL)
	require.NotNil(t, verr)
	assert.Equal(t, "imageUrl", verr.Field)
	assert.Equal(t, "imageUrl must be a valid URL", verr.Message)
}

func TestValidate_NestedFieldPath(t *testing.T) {
	type envelope struct {
		Contact models.InsertContactMessage `json:"contact"`
	}
	verr := Validate(envelope{Contact: models.InsertContactMessage{Name: "Ann", Message: "hi"}})
	require.NotNil(t, verr)
	assert.Equal(t, "contact.email", verr.Field)
}

func TestDecodeError(t *testing.T) {
	var in models.InsertContactMessage

	err := json.Unmarshal([]byte(`{"name": 5, "email": "a", "message": "b"}`), &in)
	require.Error(t, err)
	verr := DecodeError(err)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "Expected string, received number", verr.Message)

	err = json.Unmarshal([]byte(`{"name": `), &in)
	require.Error(t, err)
	verr = DecodeError(err)
	assert.Equal(t, BodyField, verr.Field)

	err = json.Unmarshal([]byte(`[]`), &in)
	require.Error(t, err)
	assert.Equal(t, BodyField, DecodeError(err).Field)
}

func TestParseID(t *testing.T) {
	id, verr := ParseID("42")
	assert.Nil(t, verr)
	assert.Equal(t, 42, id)

	for _, raw := range []string{"abc", "1.5", "", "12abc"} {
		_, verr = ParseID(raw)
		require.NotNil(t, verr, raw)
		assert.Equal(t, "id", verr.Field)
	}
}

func TestValidationError_Response(t *testing.T) {
	verr := &ValidationError{Field: "email", Message: "email is required"}
	assert.Equal(t, ValidationErrorResponse{Message: "email is required", Field: "email"}, verr.Response())
	assert.Equal(t, "email: email is required", verr.Error())
}
