package dispatcher

import (
	"github.com/mauv0809/kindred/internal/dedup"
	"github.com/mauv0809/kindred/internal/metrics"
	"github.com/mauv0809/kindred/internal/notifier"
)

const (
	PushTitle       = "New Message"
	PlaceholderBody = "You have a new message!"
)

// Outcome is the terminal state a single message reached.
type Outcome string

const (
	OutcomeNoAddress Outcome = "no_address"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeSent      Outcome = "sent"
	OutcomeFailed    Outcome = "failed"
)

// Dispatcher sends a push to the receiver of every new message.
type Dispatcher struct {
	store   Store
	pusher  notifier.Pusher
	guard   dedup.Guard
	metrics metrics.Metrics
}
