package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// PushEnvelope is the body of a Pub/Sub push delivery.
type PushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		MessageID  string            `json:"messageId"`
		Attributes map[string]string `json:"attributes,omitempty"`
	} `json:"message"`
}

var errBadEnvelope = errors.New("bad push envelope")

// decodePushEnvelope reads the push body and returns the decoded message data.
func decodePushEnvelope(r *http.Request) (PushEnvelope, []byte, error) {
	var envelope PushEnvelope
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return envelope, nil, fmt.Errorf("failed to read request body: %w", err)
	}
	log.Debug("Received push message", "body", string(bodyBytes))

	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return envelope, nil, fmt.Errorf("%w: invalid JSON: %v", errBadEnvelope, err)
	}
	rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return envelope, nil, fmt.Errorf("%w: invalid base64 data: %v", errBadEnvelope, err)
	}
	return envelope, rawData, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
