package projection

import (
	"context"
	"log/slog"

	"pos/internal/core/ports"
)

// Loop gives a Projection its single owning goroutine. Commands from the
// UI and events from the bus funnel through one select, so the projection
// itself needs no locks and no two actors ever contend on shared state.
type Loop struct {
	projection *Projection
	stream     ports.EventStream
	logger     *slog.Logger
	commands   chan func(*Projection)
}

// NewLoop creates a loop around the given projection.
func NewLoop(projection *Projection, stream ports.EventStream, logger *slog.Logger) *Loop {
	return &Loop{
		projection: projection,
		stream:     stream,
		logger:     logger,
		commands:   make(chan func(*Projection), 16),
	}
}

// Do schedules a command against the projection. The command runs on the
// loop goroutine; Do itself only blocks while the command queue is full.
func (l *Loop) Do(command func(*Projection)) {
	l.commands <- command
}

// Run owns the projection until the context is cancelled. Bus events and
// scheduled commands are applied strictly one at a time. When the event
// channel closes (connection drop), the loop keeps serving commands; the
// refresh poll covers the gap until the caller resubscribes.
func (l *Loop) Run(ctx context.Context) error {
	eventCh, err := l.stream.Subscribe(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case command := <-l.commands:
			command(l.projection)
		case event, ok := <-eventCh:
			if !ok {
				l.logger.Warn("event stream closed, relying on refresh poll")
				eventCh = nil
				continue
			}
			l.projection.ApplyEvent(event)
		}
	}
}
