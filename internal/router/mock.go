package router

import (
	"context"
	"sync"

	"github.com/mauv0809/kindred/internal/dating"
)

var _ EventRouter = (*Mock)(nil)

// Mock is a mock implementation of the EventRouter interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	RouteFunc     func(ctx context.Context, event dating.CreationEvent, dryRun bool) error
	HandleRawFunc func(ctx context.Context, data []byte, dryRun bool) error

	RouteCalls     []dating.CreationEvent
	HandleRawCalls []struct {
		Data   []byte
		DryRun bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Route(ctx context.Context, event dating.CreationEvent, dryRun bool) error {
	m.mu.Lock()
	m.RouteCalls = append(m.RouteCalls, event)
	fn := m.RouteFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, event, dryRun)
	}
	return nil
}

func (m *Mock) HandleRaw(ctx context.Context, data []byte, dryRun bool) error {
	m.mu.Lock()
	m.HandleRawCalls = append(m.HandleRawCalls, struct {
		Data   []byte
		DryRun bool
	}{data, dryRun})
	fn := m.HandleRawFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, data, dryRun)
	}
	return nil
}
