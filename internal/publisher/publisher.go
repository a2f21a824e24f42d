// Package publisher emits confirmed orders for downstream consumers
// (fulfilment, notifications). Publishing is best-effort: the checkout result
// never depends on it.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/arnoldart/shophub/internal/domain"
)

const topic = "order-confirmed"

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishOrderConfirmed(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(map[string]interface{}{
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"items":        order.Lines,
		"total_amount": order.GrandTotal,
		"currency":     order.Currency,
		"completed_at": time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order payload: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID), // order_id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.confirmed")},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() {
	if err := p.writer.Close(); err != nil {
		log.Printf("error closing kafka writer: %v", err)
	}
}

// LogPublisher stands in when no brokers are configured: the event only hits
// the process log.
type LogPublisher struct{}

func (LogPublisher) PublishOrderConfirmed(_ context.Context, order *domain.Order) error {
	log.Printf("order confirmed: id=%s user=%s total=%.2f %s", order.ID, order.UserID, order.GrandTotal, order.Currency)
	return nil
}
