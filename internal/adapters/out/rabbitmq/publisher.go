package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"pos/internal/core/domain/events"
)

const publishTimeout = 10 * time.Second

// Publisher pushes order events onto the fanout exchange. It implements
// ports.EventPublisher.
type Publisher struct {
	conn *Connection
}

// NewPublisher creates a Publisher on an established connection.
func NewPublisher(conn *Connection) *Publisher {
	return &Publisher{conn: conn}
}

// Publish sends one event as a persistent JSON message. The routing key
// carries the topic for broker-side observability; fanout ignores it for
// routing.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}

	channel, err := p.conn.Channel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = channel.PublishWithContext(
		ctx,
		Exchange,
		event.Topic(), // routing key
		false,         // mandatory
		false,         // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Topic(), err)
	}

	return nil
}
