package router

import (
	"context"

	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/detector"
	"github.com/mauv0809/kindred/internal/dispatcher"
)

// SwipeHandler is satisfied by *detector.Detector.
type SwipeHandler interface {
	HandleSwipe(ctx context.Context, swipe dating.Swipe, dryRun bool) (detector.Outcome, error)
}

// MessageHandler is satisfied by *dispatcher.Dispatcher.
type MessageHandler interface {
	HandleMessage(ctx context.Context, messageID string, msg dating.Message, dryRun bool) (dispatcher.Outcome, error)
}

// EventRouter is what the transports need from a Router.
type EventRouter interface {
	Route(ctx context.Context, event dating.CreationEvent, dryRun bool) error
	HandleRaw(ctx context.Context, data []byte, dryRun bool) error
}
