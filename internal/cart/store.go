package cart

import (
	"sync"

	"github.com/google/uuid"

	"cafe-counter/internal/model"
)

// Store owns one cart per shopping session, keyed by a session token handed to
// the client when the cart is created. Carts live until checkout succeeds or
// the client deletes them; there is no ambient global cart.
type Store struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*Cart
}

// NewStore creates an empty session cart store.
func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart)}
}

// Create allocates a new empty cart and returns its session token.
func (s *Store) Create() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.carts[id] = New()
	return id
}

// Get returns the cart for a session token.
func (s *Store) Get(id uuid.UUID) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[id]
	if !ok {
		return nil, model.ErrCartNotFound
	}
	return c, nil
}

// Delete drops a session cart. Unknown tokens are a no-op.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
