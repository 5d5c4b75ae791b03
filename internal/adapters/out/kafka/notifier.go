// Package kafka publishes order lifecycle events to a Kafka topic.
// Events are emitted after the database transaction commits; the broker is
// informational, never authoritative, so publish failures are reported to the
// caller for logging and otherwise ignored.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shop/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// OrderKafkaNotifier implements OrderNotifier on top of a kafka-go writer.
// Messages are keyed by order ID so all events of one order land in the same
// partition, preserving their relative ordering for consumers.
type OrderKafkaNotifier struct {
	writer *kafka.Writer
}

// NewOrderKafkaNotifier creates a notifier publishing to the given topic.
func NewOrderKafkaNotifier(brokers []string, topic string) *OrderKafkaNotifier {
	return &OrderKafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  3,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// PublishStatusChanged emits one status-change event as a JSON message.
func (n *OrderKafkaNotifier) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order status event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Time:  event.ChangedAt,
	}

	if err = n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish order status event: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (n *OrderKafkaNotifier) Close() error {
	return n.writer.Close()
}
