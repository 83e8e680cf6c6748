// Package router dispatches creation events to the component owning their collection.
package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/metrics"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrMalformedEvent marks an event that can never be processed. Redelivering
// it will not help.
var ErrMalformedEvent = errors.New("malformed event")

var _ EventRouter = (*Router)(nil)

// Router routes swipe events to the detector and message events to the dispatcher.
type Router struct {
	swipes   SwipeHandler
	messages MessageHandler
	counters metrics.MetricsStore
}

// New creates a new Router.
func New(swipes SwipeHandler, messages MessageHandler, counters metrics.MetricsStore) *Router {
	return &Router{
		swipes:   swipes,
		messages: messages,
		counters: counters,
	}
}

// HandleRaw decodes a msgpack encoded CreationEvent and routes it.
func (r *Router) HandleRaw(ctx context.Context, data []byte, dryRun bool) error {
	var event dating.CreationEvent
	if err := msgpack.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("%w: failed to decode event: %v", ErrMalformedEvent, err)
	}
	return r.Route(ctx, event, dryRun)
}

// Route hands event to its collection's handler. Events for other
// collections are logged and dropped.
func (r *Router) Route(ctx context.Context, event dating.CreationEvent, dryRun bool) error {
	log.Debug("Routing event", "collection", event.Collection, "documentID", event.DocumentID)

	switch event.Collection {
	case dating.CollectionSwipes:
		var swipe dating.Swipe
		if err := event.Decode(&swipe); err != nil {
			return fmt.Errorf("%w: failed to decode swipe %s: %v", ErrMalformedEvent, event.DocumentID, err)
		}
		r.count(ctx, event.Collection)
		outcome, err := r.swipes.HandleSwipe(ctx, swipe, dryRun)
		log.Debug("Swipe handled", "documentID", event.DocumentID, "outcome", outcome)
		return err

	case dating.CollectionMessages:
		var msg dating.Message
		if err := event.Decode(&msg); err != nil {
			return fmt.Errorf("%w: failed to decode message %s: %v", ErrMalformedEvent, event.DocumentID, err)
		}
		r.count(ctx, event.Collection)
		outcome, err := r.messages.HandleMessage(ctx, event.DocumentID, msg, dryRun)
		log.Debug("Message handled", "documentID", event.DocumentID, "outcome", outcome)
		return err

	default:
		log.Warn("Ignoring event for unhandled collection", "collection", event.Collection, "documentID", event.DocumentID)
		return nil
	}
}

// count bumps the event counter for collection. Counters only feed /stats, so a
// failure is logged and the event is still handled.
func (r *Router) count(ctx context.Context, collection string) {
	if err := r.counters.Increment(ctx, metrics.EventCounter(collection)); err != nil {
		log.Warn("Failed to count event", "error", err, "collection", collection)
	}
}

// PullHandler adapts r to a pull subscription. Malformed events are acked
// after logging since redelivery cannot fix them; other errors nack.
func PullHandler(r EventRouter) func(ctx context.Context, data []byte) error {
	return func(ctx context.Context, data []byte) error {
		err := r.HandleRaw(ctx, data, false)
		if errors.Is(err, ErrMalformedEvent) {
			log.Error("Dropping malformed event", "error", err)
			return nil
		}
		return err
	}
}
