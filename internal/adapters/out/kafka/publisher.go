// Package kafka publishes order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventOrderStatusChanged = "OrderStatusChanged"
	eventVersion            = 1
	producerName            = "shop"
)

// Envelope wraps every message written to the topic.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderStatusChangedPayload struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventPublisher writes one message per status change, keyed by order id so the
// changes of one order stay in one partition.
type OrderEventPublisher struct {
	w messageWriter
}

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return newOrderEventPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

func newOrderEventPublisher(w messageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{w: w}
}

func (p *OrderEventPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	payload, err := json.Marshal(OrderStatusChangedPayload{
		OrderID:    event.OrderID.String(),
		CustomerID: event.CustomerID.String(),
		From:       event.From.String(),
		To:         event.To.String(),
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	value, err := json.Marshal(Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderStatusChanged,
		EventVersion:  eventVersion,
		OccurredAt:    event.OccurredAt,
		Producer:      producerName,
		CorrelationID: event.OrderID.String(),
		Payload:       payload,
	})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(EventOrderStatusChanged)},
			{Key: "x-event-version", Value: []byte(strconv.Itoa(eventVersion))},
		},
	})
	if err != nil {
		return fmt.Errorf("write order status change of %s: %w", event.OrderID, err)
	}
	return nil
}

// Close flushes pending writes.
func (p *OrderEventPublisher) Close() error {
	return p.w.Close()
}
