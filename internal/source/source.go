// Package source writes dating documents and announces their creation, the
// way the app backend does: first the document, then the event.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/kindred/internal/dating"
)

// Store is the write side of the document store.
type Store interface {
	SaveSwipe(ctx context.Context, swipeID string, swipe *dating.Swipe) error
	SaveMessage(ctx context.Context, messageID string, message *dating.Message) error
	UpsertProfile(ctx context.Context, profile *dating.UserProfile) error
}

// Publisher announces a creation event. pubsub.PubSubClient satisfies it.
type Publisher interface {
	SendMessage(ctx context.Context, topic string, data any) error
}

type Source struct {
	store Store
	pub   Publisher
	topic string
	now   func() time.Time
}

func New(store Store, pub Publisher, topic string) *Source {
	return &Source{store: store, pub: pub, topic: topic, now: time.Now}
}

// CreateProfile stores a profile. Profiles produce no event.
func (s *Source) CreateProfile(ctx context.Context, profile dating.UserProfile) error {
	if err := s.store.UpsertProfile(ctx, &profile); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profile.UserID, err)
	}
	return nil
}

// CreateSwipe stores swipe under a new id and publishes its creation event.
func (s *Source) CreateSwipe(ctx context.Context, swipe dating.Swipe) (string, error) {
	if swipe.CreatedAt.IsZero() {
		swipe.CreatedAt = s.now().UTC()
	}
	id := uuid.NewString()
	if err := s.store.SaveSwipe(ctx, id, &swipe); err != nil {
		return "", fmt.Errorf("failed to save swipe: %w", err)
	}
	return id, s.publish(ctx, dating.CollectionSwipes, id, swipe)
}

// CreateMessage stores msg under a new id and publishes its creation event.
func (s *Source) CreateMessage(ctx context.Context, msg dating.Message) (string, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.now().UTC()
	}
	id := uuid.NewString()
	if err := s.store.SaveMessage(ctx, id, &msg); err != nil {
		return "", fmt.Errorf("failed to save message: %w", err)
	}
	return id, s.publish(ctx, dating.CollectionMessages, id, msg)
}

func (s *Source) publish(ctx context.Context, collection, id string, doc any) error {
	event, err := dating.NewCreationEvent(collection, id, doc)
	if err != nil {
		return err
	}
	if err := s.pub.SendMessage(ctx, s.topic, event); err != nil {
		return fmt.Errorf("failed to publish %s/%s: %w", collection, id, err)
	}
	log.Debug("Published creation event", "collection", collection, "documentID", id)
	return nil
}
