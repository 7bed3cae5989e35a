package rabbitmq

import (
	"encoding/json"
	"fmt"

	"pos/internal/core/domain/events"
)

// envelope is the wire frame around every event: the topic selects the
// payload shape on the consuming side.
type envelope struct {
	Topic   string          `json:"topic"`
	OrderID string          `json:"order_id"`
	Payload json.RawMessage `json:"payload"`
}

func encodeEvent(event events.Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event.Topic(), err)
	}

	return json.Marshal(envelope{
		Topic:   event.Topic(),
		OrderID: event.AggregateID(),
		Payload: payload,
	})
}

func decodeEvent(body []byte) (events.Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	var (
		event events.Event
		err   error
	)
	switch env.Topic {
	case events.TopicOrderCreated:
		var e events.OrderCreated
		err = json.Unmarshal(env.Payload, &e)
		event = e
	case events.TopicOrderStatus:
		var e events.OrderStatusChanged
		err = json.Unmarshal(env.Payload, &e)
		event = e
	case events.TopicCancellationRequested:
		var e events.CancellationRequested
		err = json.Unmarshal(env.Payload, &e)
		event = e
	case events.TopicCancellationDenied:
		var e events.CancellationDenied
		err = json.Unmarshal(env.Payload, &e)
		event = e
	case events.TopicCancellationApproved:
		var e events.CancellationApproved
		err = json.Unmarshal(env.Payload, &e)
		event = e
	default:
		return nil, fmt.Errorf("unknown topic %q", env.Topic)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", env.Topic, err)
	}

	return event, nil
}
