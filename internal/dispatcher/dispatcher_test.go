package dispatcher

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/dedup"
	"github.com/mauv0809/kindred/internal/metrics"
	"github.com/mauv0809/kindred/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withProfiles(store *dating.MockStore, list ...dating.UserProfile) {
	byID := make(map[string]dating.UserProfile, len(list))
	for _, p := range list {
		byID[p.UserID] = p
	}
	store.GetProfileFunc = func(ctx context.Context, userID string) (*dating.UserProfile, error) {
		p, ok := byID[userID]
		if !ok {
			return nil, dating.ErrNotFound
		}
		return &p, nil
	}
}

func TestHandleMessage(t *testing.T) {
	ctx := context.Background()
	bob := dating.UserProfile{UserID: "bob", PushAddress: "tok-bob"}
	msg := dating.Message{SenderID: "alice", ReceiverID: "bob", Text: "hey there"}

	t.Run("sends the message text to the receiver", func(t *testing.T) {
		store := dating.NewMock()
		withProfiles(store, bob)
		pusher := notifier.NewMock()
		guard := dedup.NewMock()
		m := metrics.NewMock()

		outcome, err := New(store, pusher, guard, m).HandleMessage(ctx, "m1", msg, false)

		require.NoError(t, err)
		assert.Equal(t, OutcomeSent, outcome)
		assert.Equal(t, []notifier.Push{{Address: "tok-bob", Title: "New Message", Body: "hey there"}}, pusher.Calls())
		assert.Equal(t, []string{"m1"}, guard.MarkCalls)
		assert.Equal(t, 1, m.PushSent())
	})

	t.Run("empty text uses the placeholder body", func(t *testing.T) {
		store := dating.NewMock()
		withProfiles(store, bob)
		pusher := notifier.NewMock()

		_, err := New(store, pusher, nil, metrics.NewMock()).HandleMessage(ctx, "m1", dating.Message{SenderID: "alice", ReceiverID: "bob"}, false)

		require.NoError(t, err)
		require.Len(t, pusher.Calls(), 1)
		assert.Equal(t, "You have a new message!", pusher.Calls()[0].Body)
	})

	t.Run("no push address means no provider call", func(t *testing.T) {
		store := dating.NewMock()
		withProfiles(store, dating.UserProfile{UserID: "bob"})
		pusher := notifier.NewMock()
		m := metrics.NewMock()

		outcome, err := New(store, pusher, nil, m).HandleMessage(ctx, "m1", msg, false)

		require.NoError(t, err)
		assert.Equal(t, OutcomeNoAddress, outcome)
		assert.Empty(t, pusher.Calls())
		assert.Equal(t, 1, m.PushSkipped())
	})

	t.Run("missing receiver profile means no provider call", func(t *testing.T) {
		store := dating.NewMock()
		pusher := notifier.NewMock()

		outcome, err := New(store, pusher, nil, metrics.NewMock()).HandleMessage(ctx, "m1", msg, false)

		require.NoError(t, err)
		assert.Equal(t, OutcomeNoAddress, outcome)
		assert.Empty(t, pusher.Calls())
	})

	t.Run("profile lookup failure is surfaced", func(t *testing.T) {
		boom := errors.New("db down")
		store := dating.NewMock()
		store.GetProfileFunc = func(ctx context.Context, userID string) (*dating.UserProfile, error) {
			return nil, boom
		}
		pusher := notifier.NewMock()

		outcome, err := New(store, pusher, nil, metrics.NewMock()).HandleMessage(ctx, "m1", msg, false)

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, OutcomeFailed, outcome)
		assert.Empty(t, pusher.Calls())
	})

	t.Run("provider failure is surfaced and not marked", func(t *testing.T) {
		store := dating.NewMock()
		withProfiles(store, bob)
		pusher := notifier.NewMock()
		pusher.PushFunc = func(ctx context.Context, push notifier.Push) error {
			return notifier.ErrInvalidAddress
		}
		guard := dedup.NewMock()
		m := metrics.NewMock()

		outcome, err := New(store, pusher, guard, m).HandleMessage(ctx, "m1", msg, false)

		assert.ErrorIs(t, err, notifier.ErrInvalidAddress)
		assert.Equal(t, OutcomeFailed, outcome)
		assert.Len(t, pusher.Calls(), 1, "no retry")
		assert.Empty(t, guard.MarkCalls)
		assert.Equal(t, 1, m.PushFailed())
	})

	t.Run("redelivery after a successful send is skipped", func(t *testing.T) {
		store := dating.NewMock()
		withProfiles(store, bob)
		pusher := notifier.NewMock()
		d := New(store, pusher, dedup.NewMock(), metrics.NewMock())

		first, err := d.HandleMessage(ctx, "m1", msg, false)
		require.NoError(t, err)
		second, err := d.HandleMessage(ctx, "m1", msg, false)
		require.NoError(t, err)

		assert.Equal(t, OutcomeSent, first)
		assert.Equal(t, OutcomeDuplicate, second)
		assert.Len(t, pusher.Calls(), 1)
	})

	t.Run("guard failure does not block the push", func(t *testing.T) {
		store := dating.NewMock()
		withProfiles(store, bob)
		pusher := notifier.NewMock()
		guard := dedup.NewMock()
		guard.SeenFunc = func(ctx context.Context, key string) (bool, error) {
			return false, errors.New("redis down")
		}

		outcome, err := New(store, pusher, guard, metrics.NewMock()).HandleMessage(ctx, "m1", msg, false)

		require.NoError(t, err)
		assert.Equal(t, OutcomeSent, outcome)
		assert.Len(t, pusher.Calls(), 1)
	})

	t.Run("dry run skips the provider", func(t *testing.T) {
		store := dating.NewMock()
		withProfiles(store, bob)
		pusher := notifier.NewMock()
		guard := dedup.NewMock()

		outcome, err := New(store, pusher, guard, metrics.NewMock()).HandleMessage(ctx, "m1", msg, true)

		require.NoError(t, err)
		assert.Equal(t, OutcomeSent, outcome)
		assert.Empty(t, pusher.Calls())
		assert.Empty(t, guard.MarkCalls)
	})
}
