package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/order/domain"
	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/pricing"
	"github.com/segmentio/kafka-go"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload published for order lifecycle changes, consumed
// by back-office tooling (fulfilment dashboard, email notifications).
type OrderEvent struct {
	Type           string        `json:"type"`
	OrderNumber    string        `json:"order_number"`
	UserID         string        `json:"user_id"`
	Status         string        `json:"status"`
	Total          pricing.Money `json:"total"`
	TrackingNumber string        `json:"tracking_number,omitempty"`
	OccurredAt     time.Time     `json:"occurred_at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers ...string) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: w}
}

func (p *Producer) OrderPlaced(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, EventOrderPlaced, order)
}

func (p *Producer) OrderStatusChanged(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, EventOrderStatusChanged, order)
}

func (p *Producer) publish(ctx context.Context, eventType string, order *domain.Order) error {
	event := OrderEvent{
		Type:           eventType,
		OrderNumber:    order.OrderNumber,
		UserID:         order.UserID,
		Status:         string(order.Status),
		Total:          order.Total,
		TrackingNumber: order.TrackingNumber,
		OccurredAt:     time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.UserID),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
