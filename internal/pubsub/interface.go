package pubsub

import "context"

// Handler processes the payload of one received message. A nil return acks
// the message; an error nacks it so Pub/Sub redelivers.
type Handler func(ctx context.Context, data []byte) error

type PubSubClient interface {
	SendMessage(ctx context.Context, topic string, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Consume(ctx context.Context, subscription string, handler Handler) error
	Close() error
}
