package dispatcher

import (
	"context"

	"github.com/mauv0809/kindred/internal/dating"
)

// Store defines the database operations required by the dispatcher.
type Store interface {
	GetProfile(ctx context.Context, userID string) (*dating.UserProfile, error)
}
