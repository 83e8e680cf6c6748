package dedup

import (
	"context"
	"sync"
)

var _ Guard = (*Mock)(nil)

// Mock is an in-memory Guard for testing. It is safe for concurrent use.
type Mock struct {
	mu   sync.Mutex
	keys map[string]bool

	SeenFunc func(ctx context.Context, key string) (bool, error)
	MarkFunc func(ctx context.Context, key string) error

	MarkCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{keys: make(map[string]bool)}
}

func (m *Mock) Seen(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	fn := m.SeenFunc
	seen := m.keys[key]
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, key)
	}
	return seen, nil
}

func (m *Mock) Mark(ctx context.Context, key string) error {
	m.mu.Lock()
	m.MarkCalls = append(m.MarkCalls, key)
	fn := m.MarkFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, key)
	}
	m.mu.Lock()
	m.keys[key] = true
	m.mu.Unlock()
	return nil
}
