// Package rabbitmq carries order events between the store and connected
// actors over a durable fanout exchange. Delivery is at-least-once;
// consumers apply events idempotently.
package rabbitmq

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const (
	connectAttempts = 5
	// Exchange carries every order event; each actor binds its own queue.
	Exchange = "orders.events"
)

// Connection wraps the broker connection with retry on dial and lazy
// reconnect on use.
type Connection struct {
	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
	url     string
	logger  *slog.Logger
}

// NewConnection dials the broker and declares the event exchange.
func NewConnection(url string, logger *slog.Logger) (*Connection, error) {
	c := &Connection{url: url, logger: logger}
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Connection) connect() error {
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		c.conn, err = amqp091.Dial(c.url)
		if err == nil {
			c.channel, err = c.conn.Channel()
			if err == nil {
				if err = c.declareTopology(); err == nil {
					return nil
				}
			}
			c.closeLocked()
		}

		if attempt < connectAttempts {
			wait := time.Duration(attempt) * 2 * time.Second
			c.logger.Warn("broker connect failed, retrying",
				"attempt", attempt, "wait", wait, "error", err)
			time.Sleep(wait)
		}
	}

	return fmt.Errorf("connect to broker after %d attempts: %w", connectAttempts, err)
}

func (c *Connection) declareTopology() error {
	err := c.channel.ExchangeDeclare(
		Exchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange %s: %w", Exchange, err)
	}
	return nil
}

// Channel returns a live channel, reconnecting first when the connection
// dropped.
func (c *Connection) Channel() (*amqp091.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() {
		if err := c.connect(); err != nil {
			return nil, err
		}
	}
	return c.channel, nil
}

// Close shuts down the channel and connection.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Connection) closeLocked() error {
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
