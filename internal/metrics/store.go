package metrics

import (
	"context"
	"database/sql"
	"fmt"
)

// EventCounterPrefix prefixes the per-collection event counters kept in the metrics table.
const EventCounterPrefix = "events_"

// EventCounter returns the counter key for events of collection.
func EventCounter(collection string) string {
	return EventCounterPrefix + collection
}

// counterStore keeps named counters in the metrics table of the application database.
type counterStore struct {
	db *sql.DB
}

// New returns a MetricsStore backed by db. The metrics table is created by the
// database migrations.
func New(db *sql.DB) MetricsStore {
	return &counterStore{db: db}
}

func (s *counterStore) Increment(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`, key)
	if err != nil {
		return fmt.Errorf("failed to increment counter %s: %w", key, err)
	}
	return nil
}

func (s *counterStore) GetAll(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM metrics")
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		counters[key] = value
	}
	return counters, rows.Err()
}
