// Package history keeps a bounded local copy of recently submitted orders.
package history

import (
	"sync"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const defaultSize = 20

// Mirror is a per-user read cache of submitted orders, newest first. The
// order backend stays authoritative.
type Mirror struct {
	size int

	mu     sync.RWMutex
	orders map[string][]model.Order
}

func NewMirror(size int) *Mirror {
	if size <= 0 {
		size = defaultSize
	}
	return &Mirror{size: size, orders: make(map[string][]model.Order)}
}

// Record prepends order to its user's history. A recorded id replaces the
// older entry.
func (m *Mirror) Record(order model.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.orders[order.UserID]
	next := make([]model.Order, 0, min(len(list)+1, m.size))
	next = append(next, order)
	for _, o := range list {
		if len(next) == m.size {
			break
		}
		if o.ID == order.ID {
			continue
		}
		next = append(next, o)
	}
	m.orders[order.UserID] = next
}

// Recent returns the mirrored orders of userID.
func (m *Mirror) Recent(userID string) []model.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Order(nil), m.orders[userID]...)
}

// UpdateStatus mirrors a status change made by an admin.
func (m *Mirror) UpdateStatus(orderID string, status model.OrderStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, list := range m.orders {
		for i := range list {
			if list[i].ID == orderID {
				list[i].Status = status
				return
			}
		}
	}
}
