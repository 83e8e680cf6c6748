package detector

import (
	"context"

	"github.com/mauv0809/kindred/internal/dating"
)

// Store defines the database operations required by the detector.
type Store interface {
	FindLike(ctx context.Context, swiperID, targetID string) (*dating.Swipe, error)
	GetProfile(ctx context.Context, userID string) (*dating.UserProfile, error)
	UpsertMatch(ctx context.Context, match *dating.Match) error
}
