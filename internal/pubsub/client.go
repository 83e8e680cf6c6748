package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/api/option"
)

// New creates a Pub/Sub client for projectID.
func New(ctx context.Context, projectID string, opts ...option.ClientOption) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &client{client: pubSubC}, nil
}

// SendMessage publishes data to topic as MessagePack and waits for the server id.
func (c *client) SendMessage(ctx context.Context, topic string, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data: msgpackData,
	}
	result := c.client.Topic(topic).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "topic", topic)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	// Unmarshal the MessagePack data into the provided pointer struct
	err := msgpack.Unmarshal(data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

// Consume pulls from subscription until ctx is cancelled. Messages are handled
// concurrently; each is acked or nacked from the handler's result.
func (c *client) Consume(ctx context.Context, subscription string, handler Handler) error {
	sub := c.client.Subscription(subscription)
	log.Info("Consuming subscription", "subscription", subscription)
	err := sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		if err := handler(ctx, m.Data); err != nil {
			log.Warn("Message handling failed. Nacking.", "error", err, "messageID", m.ID, "deliveryAttempt", m.DeliveryAttempt)
			m.Nack()
			return
		}
		m.Ack()
	})
	if err != nil {
		return fmt.Errorf("receive on %s stopped: %w", subscription, err)
	}
	log.Info("Stopped consuming subscription", "subscription", subscription)
	return nil
}

func (c *client) Close() error {
	return c.client.Close()
}
