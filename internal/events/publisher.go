// Package events publishes order lifecycle events to Kafka for downstream
// consumers (analytics, notifications). Publishing is fire-and-forget: a
// broker problem is logged, never surfaced to the shopper.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/KishoreBalajiP/eco-frontend/internal/domain"
)

// Writer is satisfied by *kafka.Writer and by test fakes.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderPlacedEvent struct {
	Type          string  `json:"type"`
	OrderID       int64   `json:"order_id"`
	PaymentMethod string  `json:"payment_method"`
	Total         float64 `json:"total"`
	OccurredAt    string  `json:"occurred_at"`
}

type PaymentReconciledEvent struct {
	Type       string `json:"type"`
	OrderID    int64  `json:"order_id"`
	Outcome    string `json:"outcome"`
	OccurredAt string `json:"occurred_at"`
}

type Publisher struct {
	writer Writer
}

// NewPublisher builds a Kafka-backed publisher. Returns nil when no brokers
// are configured; a nil Publisher drops events silently.
func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	return &Publisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}}
}

// NewPublisherWithWriter is for tests.
func NewPublisherWithWriter(w Writer) *Publisher {
	return &Publisher{writer: w}
}

func (p *Publisher) Close() {
	if p == nil || p.writer == nil {
		return
	}
	if err := p.writer.Close(); err != nil {
		log.Printf("events: close writer failed: %v", err)
	}
}

func (p *Publisher) OrderPlaced(ctx context.Context, orderID int64, method domain.PaymentMethod, total float64) {
	p.publish(orderID, OrderPlacedEvent{
		Type:          "order.placed",
		OrderID:       orderID,
		PaymentMethod: method.String(),
		Total:         total,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *Publisher) PaymentReconciled(ctx context.Context, orderID int64, outcome string) {
	p.publish(orderID, PaymentReconciledEvent{
		Type:       "payment.reconciled",
		OrderID:    orderID,
		Outcome:    outcome,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *Publisher) publish(orderID int64, event any) {
	if p == nil || p.writer == nil {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: marshal failed: %v", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%d", orderID)),
		Value: value,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("events: publish failed: %v", err)
		}
	}()
}
