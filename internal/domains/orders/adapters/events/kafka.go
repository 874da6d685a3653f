package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/helmandshop/shop-api/internal/domains/orders/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/ports"
	"github.com/helmandshop/shop-api/internal/platform/kafka"
)

const eventTypeOrderPlaced = "order.placed"

// Envelope wraps every order event with identity and timing metadata so
// consumers can deduplicate and order them.
type Envelope struct {
	EventID    string       `json:"eventId"`
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurredAt"`
	Order      orderPayload `json:"order"`
}

type orderPayload struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	ProductID         string    `json:"productId"`
	ShippingAddressID string    `json:"shippingAddressId"`
	Quantity          int64     `json:"quantity"`
	PricePaidInCents  int64     `json:"pricePaidInCents"`
	PaymentIntentID   string    `json:"paymentIntentId"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher emits order events through the shared async producer.
// Events are notifications only; a broker outage never fails a checkout.
type KafkaPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaPublisher wires the publisher onto a started producer.
func NewKafkaPublisher(producer *kafka.Producer, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: logger}
}

// OrderPlaced publishes one event per created order, keyed by user so a
// user's events stay on one partition.
func (p *KafkaPublisher) OrderPlaced(_ context.Context, orders []*domain.Order) {
	if p == nil || p.producer == nil {
		return
	}
	for _, order := range orders {
		envelope := Envelope{
			EventID:    uuid.NewString(),
			Type:       eventTypeOrderPlaced,
			OccurredAt: time.Now().UTC(),
			Order: orderPayload{
				ID:                order.ID,
				UserID:            order.UserID,
				ProductID:         order.ProductID,
				ShippingAddressID: order.ShippingAddressID,
				Quantity:          order.Quantity,
				PricePaidInCents:  order.PricePaidInCents,
				PaymentIntentID:   order.PaymentIntentID,
				Status:            string(order.Status),
				CreatedAt:         order.CreatedAt,
			},
		}
		value, err := json.Marshal(envelope)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("failed to encode order event", slog.String("order_id", order.ID), slog.String("error", err.Error()))
			}
			continue
		}
		p.producer.Publish([]byte(order.UserID), value,
			kafkago.Header{Key: "event-type", Value: []byte(eventTypeOrderPlaced)})
	}
}
