// Package dispatcher notifies the receiver of a new message.
package dispatcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/dedup"
	"github.com/mauv0809/kindred/internal/metrics"
	"github.com/mauv0809/kindred/internal/notifier"
)

// New creates a new Dispatcher. A nil guard disables de-duplication.
func New(store Store, pusher notifier.Pusher, guard dedup.Guard, metrics metrics.Metrics) *Dispatcher {
	if guard == nil {
		guard = dedup.Noop{}
	}
	return &Dispatcher{
		store:   store,
		pusher:  pusher,
		guard:   guard,
		metrics: metrics,
	}
}

// BuildPush returns the notification for msg addressed to address.
func BuildPush(address string, msg dating.Message) notifier.Push {
	body := msg.Text
	if body == "" {
		body = PlaceholderBody
	}
	return notifier.Push{
		Address: address,
		Title:   PushTitle,
		Body:    body,
	}
}

// HandleMessage reacts to one created message. Provider failures are returned
// and not retried here.
func (d *Dispatcher) HandleMessage(ctx context.Context, messageID string, msg dating.Message, dryRun bool) (Outcome, error) {
	profile, err := d.store.GetProfile(ctx, msg.ReceiverID)
	if err != nil && !errors.Is(err, dating.ErrNotFound) {
		log.Error("Failed to get receiver profile", "error", err, "messageID", messageID, "receiverID", msg.ReceiverID)
		return OutcomeFailed, fmt.Errorf("failed to get receiver profile: %w", err)
	}
	if profile == nil || profile.PushAddress == "" {
		log.Info("Receiver has no push address. Skipping.", "messageID", messageID, "receiverID", msg.ReceiverID)
		d.metrics.IncPushSkipped()
		return OutcomeNoAddress, nil
	}

	if messageID != "" {
		seen, err := d.guard.Seen(ctx, messageID)
		if err != nil {
			log.Warn("De-duplication check failed. Sending anyway.", "error", err, "messageID", messageID)
		} else if seen {
			log.Info("Push already delivered for message. Skipping.", "messageID", messageID)
			d.metrics.IncPushSkipped()
			return OutcomeDuplicate, nil
		}
	}

	push := BuildPush(profile.PushAddress, msg)
	if dryRun {
		log.Info("[Dry Run] Would send push", "messageID", messageID, "receiverID", msg.ReceiverID, "title", push.Title, "body", push.Body)
		return OutcomeSent, nil
	}

	if err := d.pusher.Push(ctx, push); err != nil {
		d.metrics.IncPushFailed()
		if errors.Is(err, notifier.ErrInvalidAddress) {
			log.Warn("Provider rejected push address", "error", err, "messageID", messageID, "receiverID", msg.ReceiverID)
		} else {
			log.Error("Failed to send push", "error", err, "messageID", messageID, "receiverID", msg.ReceiverID)
		}
		return OutcomeFailed, fmt.Errorf("failed to send push for message %s: %w", messageID, err)
	}
	d.metrics.IncPushSent()
	log.Info("Push sent", "messageID", messageID, "receiverID", msg.ReceiverID)

	if messageID != "" {
		if err := d.guard.Mark(ctx, messageID); err != nil {
			log.Warn("Failed to record delivered push", "error", err, "messageID", messageID)
		}
	}
	return OutcomeSent, nil
}
