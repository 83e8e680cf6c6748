package dating_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (dating.Store, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return dating.New(db), db, teardown
}

func TestFindLike(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveSwipe(ctx, "s1", &dating.Swipe{SwiperID: "alice", TargetID: "bob", Action: dating.ActionLike, CreatedAt: createdAt}))
	require.NoError(t, store.SaveSwipe(ctx, "s2", &dating.Swipe{SwiperID: "bob", TargetID: "carol", Action: dating.ActionPass, CreatedAt: createdAt}))

	t.Run("returns the like in the requested direction", func(t *testing.T) {
		like, err := store.FindLike(ctx, "alice", "bob")
		require.NoError(t, err)
		require.NotNil(t, like)
		assert.Equal(t, "alice", like.SwiperID)
		assert.Equal(t, "bob", like.TargetID)
		assert.Equal(t, dating.ActionLike, like.Action)
		assert.True(t, createdAt.Equal(like.CreatedAt))
	})

	t.Run("ignores the opposite direction", func(t *testing.T) {
		like, err := store.FindLike(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.Nil(t, like)
	})

	t.Run("ignores passes", func(t *testing.T) {
		like, err := store.FindLike(ctx, "bob", "carol")
		require.NoError(t, err)
		assert.Nil(t, like)
	})
}

func TestProfiles(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	t.Run("missing profile returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetProfile(ctx, "ghost")
		require.Error(t, err)
		assert.ErrorIs(t, err, dating.ErrNotFound)
	})

	t.Run("profile round-trips all fields", func(t *testing.T) {
		in := &dating.UserProfile{UserID: "alice", ZodiacSign: "Leo", Interests: []string{"hiking", "jazz"}, PushAddress: "token-a"}
		require.NoError(t, store.UpsertProfile(ctx, in))

		out, err := store.GetProfile(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("optional fields stay empty", func(t *testing.T) {
		require.NoError(t, store.UpsertProfile(ctx, &dating.UserProfile{UserID: "bob"}))

		out, err := store.GetProfile(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "", out.ZodiacSign)
		assert.Nil(t, out.Interests)
		assert.Equal(t, "", out.PushAddress)
	})

	t.Run("upsert replaces an existing profile", func(t *testing.T) {
		require.NoError(t, store.UpsertProfile(ctx, &dating.UserProfile{UserID: "alice", ZodiacSign: "Aries"}))

		out, err := store.GetProfile(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Aries", out.ZodiacSign)
		assert.Nil(t, out.Interests)
		assert.Equal(t, "", out.PushAddress)
	})
}

func TestUpsertMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	id, low, high := dating.PairID("bob", "alice")
	match := &dating.Match{
		MatchID:            id,
		UserLow:            low,
		UserHigh:           high,
		CompatibilityScore: 70,
		MatchedAt:          time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, store.UpsertMatch(ctx, match))
	}

	count, err := store.CountMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "Repeated upserts must leave a single document")

	got, err := store.GetMatch(ctx, "alice_bob")
	require.NoError(t, err)
	assert.Equal(t, match, got)

	forAlice, err := store.ListMatchesForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, forAlice, 1)
	forBob, err := store.ListMatchesForUser(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, forBob, 1)
	forCarol, err := store.ListMatchesForUser(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, forCarol)

	_, err = store.GetMatch(ctx, "carol_dave")
	assert.ErrorIs(t, err, dating.ErrNotFound)
}

func TestSaveSwipeIsImmutable(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, store.SaveSwipe(ctx, "s1", &dating.Swipe{SwiperID: "alice", TargetID: "bob", Action: dating.ActionLike}))
	require.NoError(t, store.SaveSwipe(ctx, "s1", &dating.Swipe{SwiperID: "alice", TargetID: "bob", Action: dating.ActionPass}))

	var action string
	require.NoError(t, db.QueryRow("SELECT action FROM swipes WHERE id = 's1'").Scan(&action))
	assert.Equal(t, "like", action)
}

func TestUpsertMatch_SeparatorInUserIDs(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	for _, pair := range [][2]string{{"a_b", "c"}, {"a", "b_c"}} {
		id, low, high := dating.PairID(pair[0], pair[1])
		require.NoError(t, store.UpsertMatch(ctx, &dating.Match{
			MatchID:            id,
			UserLow:            low,
			UserHigh:           high,
			CompatibilityScore: 50,
			MatchedAt:          time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		}))
	}

	count, err := store.CountMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	id, _, _ := dating.PairID("c", "a_b")
	got, err := store.GetMatch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a_b", got.UserLow)
	assert.Equal(t, "c", got.UserHigh)
}
