package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a message submitted through the public contact form and
// reviewed in the back-office inbox.
type ContactMessage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ContactMessageRequest represents the payload for submitting a contact message.
type ContactMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks the request fields, ignoring surrounding whitespace.
func (r *ContactMessageRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewDomainError(ErrCodeMissingField, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return NewDomainError(ErrCodeMissingField, "email is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		return NewDomainError(ErrCodeMissingField, "message is required")
	}
	return nil
}

// ReadUpdateRequest represents an inbox read-state change.
type ReadUpdateRequest struct {
	IsRead bool `json:"isRead"`
}
