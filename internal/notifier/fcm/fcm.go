// Package fcm delivers pushes through Firebase Cloud Messaging.
package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/charmbracelet/log"
	"github.com/mauv0809/kindred/internal/notifier"
	"google.golang.org/api/option"
)

// messagingClient is the part of messaging.Client that we use.
// This allows for easy mocking in tests.
type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

var _ notifier.Pusher = (*Pusher)(nil)

// Pusher sends to FCM registration tokens.
type Pusher struct {
	client messagingClient
}

// New creates an FCM Pusher. When credentialsFile is empty the application
// default credentials are used.
func New(ctx context.Context, projectID, credentialsFile string) (*Pusher, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}
	return &Pusher{client: client}, nil
}

// NewWithClient creates a Pusher with a specific messaging client.
func NewWithClient(client messagingClient) *Pusher {
	return &Pusher{client: client}
}

func (p *Pusher) Push(ctx context.Context, push notifier.Push) error {
	id, err := p.client.Send(ctx, &messaging.Message{
		Token: push.Address,
		Notification: &messaging.Notification{
			Title: push.Title,
			Body:  push.Body,
		},
	})
	if err != nil {
		if messaging.IsUnregistered(err) {
			return fmt.Errorf("%w: %v", notifier.ErrInvalidAddress, err)
		}
		return fmt.Errorf("failed to send fcm message: %w", err)
	}
	log.Debug("FCM accepted push", "messageID", id)
	return nil
}
