package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushRequest(t *testing.T, data []byte) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"subscription": "projects/p/subscriptions/events-push",
		"message": map[string]any{
			"data":      base64.StdEncoding.EncodeToString(data),
			"messageId": "42",
		},
	})
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
}

func TestEventsHandler(t *testing.T) {
	tests := []struct {
		name       string
		routeErr   error
		wantStatus int
	}{
		{name: "handled", wantStatus: http.StatusOK},
		{name: "malformed event", routeErr: router.ErrMalformedEvent, wantStatus: http.StatusBadRequest},
		{name: "missing profile", routeErr: dating.ErrNotFound, wantStatus: http.StatusServiceUnavailable},
		{name: "downstream failure", routeErr: errors.New("provider down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := router.NewMock()
			events.HandleRawFunc = func(ctx context.Context, data []byte, dryRun bool) error {
				return tt.routeErr
			}

			rr := httptest.NewRecorder()
			EventsHandler(events).ServeHTTP(rr, pushRequest(t, []byte("payload")))

			assert.Equal(t, tt.wantStatus, rr.Code)
			require.Len(t, events.HandleRawCalls, 1)
			assert.Equal(t, []byte("payload"), events.HandleRawCalls[0].Data)
		})
	}

	t.Run("dry run flag is forwarded", func(t *testing.T) {
		events := router.NewMock()
		req := pushRequest(t, []byte("payload"))
		req = req.WithContext(context.WithValue(req.Context(), DryRunKey, true))

		rr := httptest.NewRecorder()
		EventsHandler(events).ServeHTTP(rr, req)

		require.Len(t, events.HandleRawCalls, 1)
		assert.True(t, events.HandleRawCalls[0].DryRun)
	})

	t.Run("bad envelopes are rejected before routing", func(t *testing.T) {
		for _, body := range []string{"not json", `{"message":{"data":"%%%"}}`} {
			events := router.NewMock()
			rr := httptest.NewRecorder()
			EventsHandler(events).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(body)))

			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
			assert.Empty(t, events.HandleRawCalls)
		}
	})
}
