// Package slack mirrors pushes into a Slack channel. It stands in for a real
// push provider in development so every would-be notification is visible.
package slack

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kindred/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Slack rejects blocks whose text exceeds these lengths.
const (
	maxHeaderText  = 150
	maxSectionText = 3000
)

var _ notifier.Pusher = &Notifier{}

// Notifier posts pushes to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
	}
}

func (s *Notifier) Push(ctx context.Context, push notifier.Push) error {
	msg := s.formatPush(push)
	_, _, err := s.sendMessage(ctx, msg)
	return err
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message) (string, string, error) {
	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// formatPush renders a push as a header, the body and the target address.
func (s *Notifier) formatPush(push notifier.Push) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	headerText := slack.NewTextBlockObject("plain_text", truncate(push.Title, maxHeaderText), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", truncate(push.Body, maxSectionText), false, false), nil, nil))

	addressText := slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("to `%s`", push.Address), false, false)
	blocks = append(blocks, slack.NewContextBlock("", addressText))

	return slack.NewBlockMessage(blocks...)
}

// truncate shortens s to at most limit characters, marking the cut with "...".
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}
