package model

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem represents a single item on the café menu.
type MenuItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	IsAvailable bool      `json:"isAvailable" db:"is_available"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// MenuItemRequest represents the payload for creating or updating a menu item.
type MenuItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

// Validate checks the request fields before any persistence call.
func (r *MenuItemRequest) Validate() error {
	if r.Name == "" {
		return NewDomainError(ErrCodeMissingField, "menu item name is required")
	}
	if r.Category == "" {
		return NewDomainError(ErrCodeMissingField, "menu item category is required")
	}
	if r.Price < 0 {
		return NewDomainError(ErrCodeInvalidPrice, "menu item price cannot be negative")
	}
	return nil
}
