package handlers

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/metrics"
)

// MatchReader is the read side of the store used by the API handlers.
type MatchReader interface {
	ListMatchesForUser(ctx context.Context, userID string) ([]dating.Match, error)
	CountMatches(ctx context.Context) (int, error)
}

func ListUserMatchesHandler(store MatchReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("id")
		if userID == "" {
			http.Error(w, "Missing user id", http.StatusBadRequest)
			return
		}

		matches, err := store.ListMatchesForUser(r.Context(), userID)
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err, "userID", userID)
			return
		}
		writeJSON(w, matches)
	}
}

// StatsHandler reports the persisted event counters and the match total.
func StatsHandler(counters metrics.MetricsStore, store MatchReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := counters.GetAll(r.Context())
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to get counters from store", "error", err)
			return
		}
		total, err := store.CountMatches(r.Context())
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to count matches", "error", err)
			return
		}
		stats["matches_total"] = total
		writeJSON(w, stats)
	}
}
