// Package onesignal delivers pushes through the OneSignal REST API.
package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kindred/internal/notifier"
)

const DefaultURL = "https://onesignal.com/api/v1/notifications"

var _ notifier.Pusher = (*Pusher)(nil)

type pushMessage struct {
	AppID          string            `json:"app_id"`
	IncludeAliases includeAliases    `json:"include_aliases"`
	TargetChannel  string            `json:"target_channel"`
	Headings       map[string]string `json:"headings"`
	Contents       map[string]string `json:"contents"`
}

type includeAliases struct {
	ExternalID []string `json:"external_id"`
}

type pushResponse struct {
	ID     string          `json:"id"`
	Errors json.RawMessage `json:"errors,omitempty"`
}

// Pusher sends to OneSignal users addressed by their external id.
type Pusher struct {
	appID  string
	apiKey string
	url    string
	client *http.Client
}

// New creates a OneSignal Pusher against the public API.
func New(appID, apiKey string) *Pusher {
	return NewWithURL(appID, apiKey, DefaultURL)
}

// NewWithURL creates a Pusher that posts to url. Useful for tests.
func NewWithURL(appID, apiKey, url string) *Pusher {
	return &Pusher{
		appID:  appID,
		apiKey: apiKey,
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Pusher) Push(ctx context.Context, push notifier.Push) error {
	reqBody, err := json.Marshal(pushMessage{
		AppID:          p.appID,
		IncludeAliases: includeAliases{ExternalID: []string{push.Address}},
		TargetChannel:  "push",
		Headings:       map[string]string{"en": push.Title},
		Contents:       map[string]string{"en": push.Body},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var body pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	// OneSignal answers 200 without an id when no subscription matched.
	if body.ID == "" {
		return fmt.Errorf("%w: %s", notifier.ErrInvalidAddress, string(body.Errors))
	}
	log.Debug("OneSignal accepted push", "notificationID", body.ID)
	return nil
}
