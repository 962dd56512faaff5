package cart

import (
	"sync"

	"github.com/pranesta/storefront/internal/domain"
)

// Store is the in-memory cart: an ordered sequence of lines with at most
// one line per product id. Insertion order is significant for display and
// for positional removal.
type Store struct {
	mu    sync.RWMutex
	lines []domain.CartLine
}

func NewStore() *Store {
	return &Store{}
}

// Add merges the product into an existing line when one with the same id is
// present, keeping the originally captured price and title; otherwise it
// appends a new line with quantity 1. Quantities are unbounded and no stock
// check is performed.
func (s *Store) Add(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Qty++
			return
		}
	}

	s.lines = append(s.lines, domain.CartLine{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Qty:       1,
	})
}

// Remove deletes the line at the given zero-based position. An out-of-range
// position is a no-op.
func (s *Store) Remove(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.lines) {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// Lines returns a copy of the cart's lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the sum of price times quantity across all lines.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Clear empties the cart. Invoked only after a fully successful checkout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}
