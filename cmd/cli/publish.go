package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/database"
	"github.com/mauv0809/kindred/internal/http/handlers"
	"github.com/mauv0809/kindred/internal/pubsub"
	"github.com/mauv0809/kindred/internal/source"
	"github.com/vmihailenco/msgpack/v5"
)

// pushPublisher delivers events as a Pub/Sub push subscription would.
type pushPublisher struct {
	host string
}

func (p pushPublisher) SendMessage(ctx context.Context, topic string, data any) error {
	raw, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	var envelope handlers.PushEnvelope
	envelope.Subscription = "direct/" + topic
	envelope.Message.Data = base64.StdEncoding.EncodeToString(raw)
	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/events", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("server rejected event: %s", resp.Status)
	}
	return nil
}

// newSource opens the same database as the server and picks the event transport.
func newSource(ctx context.Context) (*source.Source, func(), error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, reading from environment variables")
	}
	db, dbTeardown, err := database.InitDB(getEnvOr("DB_NAME", "kindred.db"), os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := dating.New(db)
	topic := getEnvOr("EVENTS_TOPIC", "dating-events")

	if direct {
		return source.New(store, pushPublisher{host: host}, topic), dbTeardown, nil
	}

	projectID := os.Getenv("GCP_PROJECT")
	if projectID == "" {
		dbTeardown()
		return nil, nil, fmt.Errorf("GCP_PROJECT is required unless --direct is set")
	}
	client, err := pubsub.New(ctx, projectID)
	if err != nil {
		dbTeardown()
		return nil, nil, err
	}
	closer := func() {
		client.Close()
		dbTeardown()
	}
	return source.New(store, client, topic), closer, nil
}

func getEnvOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
