package pubsub

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type event struct {
	Collection string `msgpack:"collection"`
	DocumentID string `msgpack:"documentId"`
}

// newFakeClient starts an in-process Pub/Sub server with one topic and subscription.
func newFakeClient(t *testing.T) PubSubClient {
	t.Helper()
	ctx := context.Background()

	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	raw, err := pubsub.NewClient(ctx, "test-project", option.WithGRPCConn(conn))
	require.NoError(t, err)
	topic, err := raw.CreateTopic(ctx, "events")
	require.NoError(t, err)
	_, err = raw.CreateSubscription(ctx, "events-sub", pubsub.SubscriptionConfig{Topic: topic, AckDeadline: 10 * time.Second})
	require.NoError(t, err)

	c := &client{client: raw}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSendAndConsume(t *testing.T) {
	c := newFakeClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, c.SendMessage(ctx, "events", event{Collection: "swipes", DocumentID: "s1"}))

	var (
		mu       sync.Mutex
		received []event
		attempts int
	)
	err := c.Consume(ctx, "events-sub", func(ctx context.Context, data []byte) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 1 {
			return errors.New("transient")
		}
		var e event
		require.NoError(t, c.ProcessMessage(data, &e))
		received = append(received, e)
		cancel()
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []event{{Collection: "swipes", DocumentID: "s1"}}, received)
	assert.GreaterOrEqual(t, attempts, 2, "a nacked message is redelivered")
}

func TestProcessMessage_Malformed(t *testing.T) {
	c := &client{}
	var e event
	assert.Error(t, c.ProcessMessage([]byte{0xc1}, &e))
}
