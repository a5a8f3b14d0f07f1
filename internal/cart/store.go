// Package cart holds the shopping carts of active sessions.
package cart

import (
	"sync"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// MaxQuantity is the largest quantity a single cart line can hold.
const MaxQuantity = 999

// Observer receives the cart contents after every change. Observers are
// called one change at a time in the order the changes happened and must
// not modify the store.
type Observer func(lines []model.CartLine)

// Store is a concurrency safe cart. Quantities stay within 1..MaxQuantity
// and a product appears on at most one line.
type Store struct {
	mu        sync.RWMutex
	lines     []model.CartLine
	observers map[int]Observer
	nextID    int
	seq       uint64

	notifyMu sync.Mutex
	turn     *sync.Cond
	notified uint64
}

var _ repository.CartRepository = (*Store)(nil)

// NewStore returns an empty cart.
func NewStore() *Store {
	s := &Store{observers: make(map[int]Observer)}
	s.turn = sync.NewCond(&s.notifyMu)
	return s
}

func clampQuantity(q int) int {
	switch {
	case q < 1:
		return 1
	case q > MaxQuantity:
		return MaxQuantity
	}
	return q
}

// AddItem inserts product with quantity. Adding a product that is already in
// the cart increases the existing line instead, up to MaxQuantity.
func (s *Store) AddItem(product model.Product, quantity int) {
	quantity = clampQuantity(quantity)
	s.mutate(func() bool {
		if i := s.indexOf(product.ID); i >= 0 {
			s.lines[i].Quantity = clampQuantity(s.lines[i].Quantity + quantity)
			return true
		}
		s.lines = append(s.lines, model.NewCartLine(product, quantity))
		return true
	})
}

// RemoveItem drops the line of productID. Absent products are ignored.
func (s *Store) RemoveItem(productID string) {
	s.mutate(func() bool {
		i := s.indexOf(productID)
		if i < 0 {
			return false
		}
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		return true
	})
}

// UpdateQuantity increments the line by one or decrements it down to 1.
func (s *Store) UpdateQuantity(productID string, increment bool) {
	s.mutate(func() bool {
		i := s.indexOf(productID)
		if i < 0 {
			return false
		}
		if increment {
			if s.lines[i].Quantity >= MaxQuantity {
				return false
			}
			s.lines[i].Quantity++
			return true
		}
		if s.lines[i].Quantity <= 1 {
			return false
		}
		s.lines[i].Quantity--
		return true
	})
}

// ClearItems empties the cart.
func (s *Store) ClearItems() {
	s.mutate(func() bool {
		s.lines = nil
		return true
	})
}

// Subtract takes the quantities of lines off the matching cart lines and
// drops lines that reach zero. Products added after lines were read, and
// quantity added on top of them, stay in the cart.
func (s *Store) Subtract(lines []model.CartLine) {
	s.mutate(func() bool {
		changed := false
		for _, sub := range lines {
			i := s.indexOf(sub.ProductID)
			if i < 0 || sub.Quantity < 1 {
				continue
			}
			changed = true
			if s.lines[i].Quantity <= sub.Quantity {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
				continue
			}
			s.lines[i].Quantity -= sub.Quantity
		}
		return changed
	})
}

// HasItem reports whether productID has a line.
func (s *Store) HasItem(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(productID) >= 0
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []model.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Len returns the number of lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Restore replaces the contents with lines, merging duplicates and clamping
// quantities. Observers are not notified.
func (s *Store) Restore(lines []model.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	for _, line := range lines {
		line.Quantity = clampQuantity(line.Quantity)
		if i := s.indexOf(line.ProductID); i >= 0 {
			s.lines[i].Quantity = clampQuantity(s.lines[i].Quantity + line.Quantity)
			continue
		}
		s.lines = append(s.lines, line)
	}
}

// Subscribe registers o and returns a function removing it.
func (s *Store) Subscribe(o Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = o
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	lines := s.snapshot()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	ticket := s.seq
	s.seq++
	s.mu.Unlock()

	s.notifyMu.Lock()
	for s.notified != ticket {
		s.turn.Wait()
	}
	for _, o := range observers {
		o(lines)
	}
	s.notified++
	s.turn.Broadcast()
	s.notifyMu.Unlock()
}

func (s *Store) snapshot() []model.CartLine {
	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) indexOf(productID string) int {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
