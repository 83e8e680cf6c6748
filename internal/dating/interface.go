package dating

import "context"

// Store defines the document operations of the dating event source.
type Store interface {
	// FindLike returns the like swiperID gave targetID, or nil when none exists.
	FindLike(ctx context.Context, swiperID, targetID string) (*Swipe, error)
	// GetProfile returns ErrNotFound when the user does not exist.
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	// UpsertMatch overwrites the match document keyed by match.MatchID.
	UpsertMatch(ctx context.Context, match *Match) error
	GetMatch(ctx context.Context, matchID string) (*Match, error)
	ListMatchesForUser(ctx context.Context, userID string) ([]Match, error)
	CountMatches(ctx context.Context) (int, error)

	// Writers used by the seeder and tests; clients own these documents in production.
	UpsertProfile(ctx context.Context, profile *UserProfile) error
	SaveSwipe(ctx context.Context, swipeID string, swipe *Swipe) error
	SaveMessage(ctx context.Context, messageID string, message *Message) error
}
