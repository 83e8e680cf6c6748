package dedup

import "context"

// Guard remembers which keys have already had their side effect applied.
// Seen and Mark are separate so a key is only marked after the effect succeeded.
type Guard interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}
