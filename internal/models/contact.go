package models

// ContactMessage is an inquiry submitted through the contact form.
type ContactMessage struct {
	ID      int    `json:"id" validate:"gt=0"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// InsertContactMessage is the contact form payload.
type InsertContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}
