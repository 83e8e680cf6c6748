package dating

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new Store backed by db.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// FindLike looks up the like swiperID gave targetID. It is a point-in-time
// read; nothing ties it to a later UpsertMatch.
func (s *store) FindLike(ctx context.Context, swiperID, targetID string) (*Swipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		swipe     Swipe
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT swiper_id, target_id, action, created_at
		FROM swipes
		WHERE swiper_id = ? AND target_id = ? AND action = ?
		ORDER BY created_at ASC
		LIMIT 1
	`, swiperID, targetID, ActionLike).Scan(&swipe.SwiperID, &swipe.TargetID, &swipe.Action, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query like %s->%s: %w", swiperID, targetID, err)
	}
	swipe.CreatedAt = fromMillis(createdAt)
	return &swipe, nil
}

// GetProfile returns the profile of userID.
func (s *store) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		profile                              UserProfile
		zodiacSign, interestsJSON, pushAddr sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, zodiac_sign, interests_json, push_address
		FROM users
		WHERE id = ?
	`, userID).Scan(&profile.UserID, &zodiacSign, &interestsJSON, &pushAddr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user %s: %w", userID, err)
	}

	profile.ZodiacSign = zodiacSign.String
	profile.PushAddress = pushAddr.String
	if interestsJSON.Valid && interestsJSON.String != "" {
		if err := json.Unmarshal([]byte(interestsJSON.String), &profile.Interests); err != nil {
			// A corrupt interest list only costs the user an interest bonus.
			log.Warn("Failed to unmarshal interests_json", "error", err, "userID", userID)
			profile.Interests = nil
		}
	}
	return &profile, nil
}

// UpsertProfile inserts or fully replaces a user profile.
func (s *store) UpsertProfile(ctx context.Context, profile *UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var interestsJSON sql.NullString
	if len(profile.Interests) > 0 {
		b, err := json.Marshal(profile.Interests)
		if err != nil {
			return err
		}
		interestsJSON = sql.NullString{String: string(b), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, zodiac_sign, interests_json, push_address)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			zodiac_sign = excluded.zodiac_sign,
			interests_json = excluded.interests_json,
			push_address = excluded.push_address;
	`, profile.UserID, nullIfEmpty(profile.ZodiacSign), interestsJSON, nullIfEmpty(profile.PushAddress))
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", profile.UserID, err)
	}
	return nil
}

// UpsertMatch writes every field of the match, replacing any existing
// document with the same id. Repeating the call with the same value is a no-op.
func (s *store) UpsertMatch(ctx context.Context, match *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (id, user_low, user_high, compatibility_score, matched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_low = excluded.user_low,
			user_high = excluded.user_high,
			compatibility_score = excluded.compatibility_score,
			matched_at = excluded.matched_at;
	`, match.MatchID, match.UserLow, match.UserHigh, match.CompatibilityScore, toMillis(match.MatchedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", match.MatchID, err)
	}
	return nil
}

// GetMatch returns the match with the given id.
func (s *store) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_low, user_high, compatibility_score, matched_at
		FROM matches
		WHERE id = ?
	`, matchID)
	match, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query match %s: %w", matchID, err)
	}
	return match, nil
}

// ListMatchesForUser returns every match userID is part of, newest first.
func (s *store) ListMatchesForUser(ctx context.Context, userID string) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_low, user_high, compatibility_score, matched_at
		FROM matches
		WHERE user_low = ? OR user_high = ?
		ORDER BY matched_at DESC, id ASC
	`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for %s: %w", userID, err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// CountMatches returns the number of match documents.
func (s *store) CountMatches(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM matches").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SaveSwipe stores a swipe document. Swipes are immutable, so an existing id is left untouched.
func (s *store) SaveSwipe(ctx context.Context, swipeID string, swipe *Swipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO swipes (id, swiper_id, target_id, action, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING;
	`, swipeID, swipe.SwiperID, swipe.TargetID, swipe.Action, toMillis(swipe.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save swipe %s: %w", swipeID, err)
	}
	return nil
}

// SaveMessage stores a message document. Messages are immutable, so an existing id is left untouched.
func (s *store) SaveMessage(ctx context.Context, messageID string, message *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, sender_id, receiver_id, text, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING;
	`, messageID, message.SenderID, message.ReceiverID, nullIfEmpty(message.Text), toMillis(message.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save message %s: %w", messageID, err)
	}
	return nil
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var (
		match     Match
		matchedAt int64
	)
	if err := scanner.Scan(&match.MatchID, &match.UserLow, &match.UserHigh, &match.CompatibilityScore, &matchedAt); err != nil {
		return nil, err
	}
	match.MatchedAt = fromMillis(matchedAt)
	return &match, nil
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
