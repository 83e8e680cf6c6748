package notifier

import (
	"context"
	"sync"
)

var _ Pusher = (*Mock)(nil)

// Mock is a mock implementation of the Pusher interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	PushFunc  func(ctx context.Context, push Push) error
	PushCalls []Push
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PushCalls = nil
}

func (m *Mock) Push(ctx context.Context, push Push) error {
	m.mu.Lock()
	m.PushCalls = append(m.PushCalls, push)
	fn := m.PushFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, push)
	}
	return nil
}

// Calls returns a copy of the recorded pushes.
func (m *Mock) Calls() []Push {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Push, len(m.PushCalls))
	copy(out, m.PushCalls)
	return out
}
