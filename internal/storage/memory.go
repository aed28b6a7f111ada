package storage

import (
	"context"
	"sync"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

// Memory keeps the guest cart in process memory. Useful for tests and for
// sessions that should not outlive the process.
type Memory struct {
	mu    sync.RWMutex
	items []domain.CartItem
	saved bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) ([]domain.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.saved {
		return nil, nil
	}

	// Non-nil even when empty: a saved empty cart is not "nothing persisted".
	items := make([]domain.CartItem, 0, len(m.items))
	return append(items, m.items...), nil
}

func (m *Memory) Save(_ context.Context, items []domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = append([]domain.CartItem(nil), items...)
	m.saved = true
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	m.saved = false
	return nil
}
