package service

import (
	"fmt"
	"sync"

	"tastehaven/internal/domain"
)

// CartService holds one in-memory cart per client session. Carts are
// ephemeral: they do not survive a restart.
type CartService struct {
	mu    sync.Mutex
	carts map[string][]domain.CartLine
}

func NewCartService() *CartService {
	return &CartService{carts: make(map[string][]domain.CartLine)}
}

// AddItem merges into an existing line when the item id is already in the
// cart, otherwise appends a new line with the given quantity.
func (s *CartService) AddItem(sessionID string, line domain.CartLine, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID == line.ID {
			lines[i].Quantity += quantity
			return nil
		}
	}
	line.Quantity = quantity
	s.carts[sessionID] = append(lines, line)
	return nil
}

// UpdateQuantity sets a line's quantity to the given value, clamped to a
// floor of 1. Dropping a line is an explicit RemoveItem, never a side
// effect of setting zero. No-op when the line is absent.
func (s *CartService) UpdateQuantity(sessionID, id string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID == id {
			lines[i].Quantity = quantity
			return
		}
	}
}

func (s *CartService) RemoveItem(sessionID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID == id {
			s.carts[sessionID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

func (s *CartService) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}

func (s *CartService) Lines(sessionID string) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.CartLine, len(s.carts[sessionID]))
	copy(lines, s.carts[sessionID])
	return lines
}

// TotalCents sums price * quantity over all lines in integer cents.
func (s *CartService) TotalCents(sessionID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, line := range s.carts[sessionID] {
		total += line.PriceCents * int64(line.Quantity)
	}
	return total
}

var _ CartServiceInterface = (*CartService)(nil)
