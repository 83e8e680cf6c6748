package metrics

import (
	"context"
	"sync"
)

var (
	_ Metrics      = (*Mock)(nil)
	_ MetricsStore = (*MockStore)(nil)
)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	swipesProcessed    int
	matchesWritten     int
	detectionDurations []float64
	pushSent           int
	pushFailed         int
	pushSkipped        int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		detectionDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSwipesProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.swipesProcessed++
}

func (m *Mock) IncMatchesWritten() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesWritten++
}

func (m *Mock) ObserveDetectionDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detectionDurations = append(m.detectionDurations, duration)
}

func (m *Mock) IncPushSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushSent++
}

func (m *Mock) IncPushFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushFailed++
}

func (m *Mock) IncPushSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pushSkipped++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SwipesProcessed returns the number of times IncSwipesProcessed was called.
func (m *Mock) SwipesProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.swipesProcessed
}

// MatchesWritten returns the number of times IncMatchesWritten was called.
func (m *Mock) MatchesWritten() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesWritten
}

// DetectionDurations returns a copy of every observed detection duration.
func (m *Mock) DetectionDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.detectionDurations))
	copy(out, m.detectionDurations)
	return out
}

// PushSent returns the number of times IncPushSent was called.
func (m *Mock) PushSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pushSent
}

// PushFailed returns the number of times IncPushFailed was called.
func (m *Mock) PushFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pushFailed
}

// PushSkipped returns the number of times IncPushSkipped was called.
func (m *Mock) PushSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pushSkipped
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}

// MockStore is an in-memory MetricsStore for testing.
type MockStore struct {
	mu     sync.Mutex
	values map[string]int

	IncrementFunc func(ctx context.Context, key string) error
	GetAllFunc    func(ctx context.Context) (map[string]int, error)
}

func NewMockStore() *MockStore {
	return &MockStore{values: make(map[string]int)}
}

func (m *MockStore) Increment(ctx context.Context, key string) error {
	m.mu.Lock()
	fn := m.IncrementFunc
	if fn == nil {
		m.values[key]++
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()
	return fn(ctx, key)
}

func (m *MockStore) GetAll(ctx context.Context) (map[string]int, error) {
	m.mu.Lock()
	fn := m.GetAllFunc
	if fn == nil {
		out := make(map[string]int, len(m.values))
		for k, v := range m.values {
			out[k] = v
		}
		m.mu.Unlock()
		return out, nil
	}
	m.mu.Unlock()
	return fn(ctx)
}

// Get returns the current value of key, or zero.
func (m *MockStore) Get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}
