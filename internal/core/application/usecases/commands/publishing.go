package commands

import (
	"context"
	"log/slog"

	"pos/internal/core/domain/events"
	"pos/internal/core/ports"
)

// publishBestEffort pushes an event onto the bus after a committed write.
// Publishing is not part of the transaction: a failed publish is logged and
// swallowed, because consumers reconcile missed events through the periodic
// board refresh poll.
func publishBestEffort(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	event events.Event,
) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "event publish failed",
			"topic", event.Topic(),
			"order_id", event.AggregateID(),
			"error", err,
		)
	}
}
