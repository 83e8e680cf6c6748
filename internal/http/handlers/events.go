package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/router"
)

// EventsHandler receives creation events from a Pub/Sub push subscription.
// Any non-2xx status makes Pub/Sub redeliver the event.
func EventsHandler(events router.EventRouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		envelope, rawData, err := decodePushEnvelope(r)
		if err != nil {
			log.Error("Failed to decode push envelope", "error", err)
			if errors.Is(err, errBadEnvelope) {
				http.Error(w, "Invalid push envelope", http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}

		err = events.HandleRaw(r.Context(), rawData, IsDryRunFromContext(r))
		switch {
		case err == nil:
			w.Write([]byte("OK"))
		case errors.Is(err, router.ErrMalformedEvent):
			log.Error("Rejecting malformed event", "error", err, "messageID", envelope.Message.MessageID)
			http.Error(w, "Malformed event", http.StatusBadRequest)
		case errors.Is(err, dating.ErrNotFound):
			log.Warn("Event depends on missing data. Asking for redelivery.", "error", err, "messageID", envelope.Message.MessageID)
			http.Error(w, "Dependent data not available yet", http.StatusServiceUnavailable)
		default:
			log.Error("Failed to handle event", "error", err, "messageID", envelope.Message.MessageID)
			http.Error(w, "Failed to handle event", http.StatusInternalServerError)
		}
	}
}
