package rabbitmq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos/internal/core/domain/events"
)

func TestEncodeDecodeEvent_CarriesTopicAndPayload(t *testing.T) {
	original := events.OrderStatusChanged{
		OrderID:     "order-1",
		OrderNumber: "ORD-0001",
		Status:      "Preparing",
	}

	body, err := encodeEvent(original)
	require.NoError(t, err)

	decoded, err := decodeEvent(body)
	require.NoError(t, err)

	assert.Equal(t, original, decoded)
	assert.Equal(t, events.TopicOrderStatus, decoded.Topic())
	assert.Equal(t, "order-1", decoded.AggregateID())
}

func TestDecodeEvent_SnapshotSurvivesTheWire(t *testing.T) {
	table := "table-7"
	original := events.OrderCreated{Order: events.OrderSnapshot{
		ID:           "order-2",
		Number:       "ORD-0002",
		BranchID:     "branch-1",
		Status:       "Pending",
		DeliveryType: "DineIn",
		TableID:      &table,
		Items: []events.ItemSnapshot{
			{ProductID: "prod-1", Name: "Margherita", Quantity: 2, UnitPriceCents: 1250,
				Modifiers: []string{"extra cheese"}},
		},
		SubtotalCents: 2500,
		TotalCents:    2750,
	}}

	body, err := encodeEvent(original)
	require.NoError(t, err)

	decoded, err := decodeEvent(body)
	require.NoError(t, err)

	created, ok := decoded.(events.OrderCreated)
	require.True(t, ok)
	assert.Equal(t, original.Order, created.Order)
}

func TestDecodeEvent_UnknownTopicFails(t *testing.T) {
	body, err := json.Marshal(envelope{Topic: "order:exploded", OrderID: "order-1"})
	require.NoError(t, err)

	_, err = decodeEvent(body)

	assert.ErrorContains(t, err, "unknown topic")
}

func TestDecodeEvent_MalformedBodyFails(t *testing.T) {
	_, err := decodeEvent([]byte("not json"))

	assert.Error(t, err)
}
