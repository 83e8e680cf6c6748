package notifier

import (
	"context"
	"errors"
)

// ErrInvalidAddress is returned by a Pusher when the provider rejects the
// device address as unknown or no longer registered.
var ErrInvalidAddress = errors.New("invalid push address")

// Push is a single provider-neutral push notification.
type Push struct {
	// Address is the provider-specific device token or subscription id.
	Address string
	Title   string
	Body    string
}

// Pusher delivers push notifications to one provider.
// This decouples the rest of the application from the specific provider (e.g., FCM).
type Pusher interface {
	Push(ctx context.Context, push Push) error
}
