// Package pubsub is the in-process event bus used to fan auth outcomes out
// to subscribers such as the audit log.
package pubsub

import "context"

// Message is one event on the bus. Subject is the user id the event concerns
// and may be empty; Payload is JSON. Metadata travels alongside untouched.
type Message struct {
	Topic    string
	Subject  string
	Payload  []byte
	Metadata map[string]string
}

// Handler processes a delivered message. A non-nil error nacks it.
type Handler func(ctx context.Context, msg Message) error

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber runs handler for every message on topic in the background
// until ctx is canceled or the bus is closed.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
