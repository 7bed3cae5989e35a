package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"pos/internal/core/domain/events"
)

// Subscriber reads order events from the fanout exchange through its own
// exclusive queue. It implements ports.EventStream.
type Subscriber struct {
	conn   *Connection
	logger *slog.Logger
}

// NewSubscriber creates a Subscriber on an established connection.
func NewSubscriber(conn *Connection, logger *slog.Logger) *Subscriber {
	return &Subscriber{conn: conn, logger: logger}
}

// Subscribe binds a fresh exclusive queue to the event exchange and starts
// delivering decoded events. The returned channel closes when the context
// is cancelled or the broker connection drops; the caller resubscribes.
func (s *Subscriber) Subscribe(ctx context.Context) (<-chan events.Event, error) {
	channel, err := s.conn.Channel()
	if err != nil {
		return nil, err
	}

	queue, err := channel.QueueDeclare(
		"",    // broker-named
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare subscriber queue: %w", err)
	}

	if err := channel.QueueBind(queue.Name, "", Exchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue %s: %w", queue.Name, err)
	}

	deliveries, err := channel.Consume(
		queue.Name,
		"",    // consumer tag, broker-named
		false, // manual ack
		true,  // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("consume from %s: %w", queue.Name, err)
	}

	out := make(chan events.Event)
	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					s.logger.Warn("event delivery channel closed")
					return
				}

				event, decodeErr := decodeEvent(delivery.Body)
				if decodeErr != nil {
					// A malformed message will not improve on redelivery.
					s.logger.Warn("dropping undecodable event", "error", decodeErr)
					_ = delivery.Nack(false, false)
					continue
				}

				select {
				case out <- event:
					_ = delivery.Ack(false)
				case <-ctx.Done():
					_ = delivery.Nack(false, true)
					return
				}
			}
		}
	}()

	return out, nil
}
