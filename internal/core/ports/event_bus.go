package ports

import (
	"context"

	"pos/internal/core/domain/events"
)

// EventPublisher pushes order notifications onto the event bus after every
// successful write. The bus is at-least-once: duplicate delivery is possible
// and consumers must apply events idempotently.
type EventPublisher interface {
	// Publish sends a single event. Implementations serialize the payload
	// and must not block indefinitely; a bounded timeout applies.
	Publish(ctx context.Context, event events.Event) error
}

// EventStream is the consuming side of the event bus. Each connected actor
// subscribes once and reads order notifications from the returned channel.
type EventStream interface {
	// Subscribe starts delivery of order events. The channel is closed when
	// the context is cancelled or the underlying connection drops; callers
	// decide whether to resubscribe.
	Subscribe(ctx context.Context) (<-chan events.Event, error)
}
