package model

import (
	"time"

	"github.com/google/uuid"
)

// CafeTable represents a physical table that dine-in orders reference.
type CafeTable struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TableNumber int       `json:"tableNumber" db:"table_number"`
	Seats       int       `json:"seats" db:"seats"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// CafeTableRequest represents the payload for creating or updating a table.
type CafeTableRequest struct {
	TableNumber int  `json:"tableNumber"`
	Seats       int  `json:"seats"`
	IsActive    bool `json:"isActive"`
}

// Validate checks the request fields.
func (r *CafeTableRequest) Validate() error {
	if r.TableNumber <= 0 {
		return NewDomainError(ErrCodeMissingField, "table number must be positive")
	}
	if r.Seats <= 0 {
		return NewDomainError(ErrCodeMissingField, "table must have at least one seat")
	}
	return nil
}
