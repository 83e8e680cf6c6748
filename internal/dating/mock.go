package dating

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	FindLikeFunc           func(ctx context.Context, swiperID, targetID string) (*Swipe, error)
	GetProfileFunc         func(ctx context.Context, userID string) (*UserProfile, error)
	UpsertMatchFunc        func(ctx context.Context, match *Match) error
	GetMatchFunc           func(ctx context.Context, matchID string) (*Match, error)
	ListMatchesForUserFunc func(ctx context.Context, userID string) ([]Match, error)
	CountMatchesFunc       func(ctx context.Context) (int, error)
	UpsertProfileFunc      func(ctx context.Context, profile *UserProfile) error
	SaveSwipeFunc          func(ctx context.Context, swipeID string, swipe *Swipe) error
	SaveMessageFunc        func(ctx context.Context, messageID string, message *Message) error

	// Call records
	FindLikeCalls []struct {
		SwiperID string
		TargetID string
	}
	GetProfileCalls  []string
	UpsertMatchCalls []*Match
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindLikeCalls = nil
	m.GetProfileCalls = nil
	m.UpsertMatchCalls = nil
}

func (m *MockStore) FindLike(ctx context.Context, swiperID, targetID string) (*Swipe, error) {
	m.mu.Lock()
	m.FindLikeCalls = append(m.FindLikeCalls, struct {
		SwiperID string
		TargetID string
	}{swiperID, targetID})
	fn := m.FindLikeFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, swiperID, targetID)
	}
	return nil, nil
}

func (m *MockStore) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	m.mu.Lock()
	m.GetProfileCalls = append(m.GetProfileCalls, userID)
	fn := m.GetProfileFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, userID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) UpsertMatch(ctx context.Context, match *Match) error {
	m.mu.Lock()
	m.UpsertMatchCalls = append(m.UpsertMatchCalls, match)
	fn := m.UpsertMatchFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, match)
	}
	return nil
}

func (m *MockStore) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(ctx, matchID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListMatchesForUser(ctx context.Context, userID string) ([]Match, error) {
	if m.ListMatchesForUserFunc != nil {
		return m.ListMatchesForUserFunc(ctx, userID)
	}
	return []Match{}, nil
}

func (m *MockStore) CountMatches(ctx context.Context) (int, error) {
	if m.CountMatchesFunc != nil {
		return m.CountMatchesFunc(ctx)
	}
	return 0, nil
}

func (m *MockStore) UpsertProfile(ctx context.Context, profile *UserProfile) error {
	if m.UpsertProfileFunc != nil {
		return m.UpsertProfileFunc(ctx, profile)
	}
	return nil
}

func (m *MockStore) SaveSwipe(ctx context.Context, swipeID string, swipe *Swipe) error {
	if m.SaveSwipeFunc != nil {
		return m.SaveSwipeFunc(ctx, swipeID, swipe)
	}
	return nil
}

func (m *MockStore) SaveMessage(ctx context.Context, messageID string, message *Message) error {
	if m.SaveMessageFunc != nil {
		return m.SaveMessageFunc(ctx, messageID, message)
	}
	return nil
}
