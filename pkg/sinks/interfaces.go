package sinks

import "context"

// Sink sends events to a downstream destination (webhook, queue, topic).
type Sink interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}
