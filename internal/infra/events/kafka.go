package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shawarma/internal/domain/model"

	"github.com/segmentio/kafka-go"
)

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// 注文イベントをKafkaへ流す（placed / status_updated）。
type KafkaOrderPublisher struct {
	writer *kafka.Writer
}

func NewKafkaOrderPublisher(writer *kafka.Writer) *KafkaOrderPublisher {
	return &KafkaOrderPublisher{writer: writer}
}

type orderEvent struct {
	Type        string    `json:"type"`
	OrderID     int64     `json:"orderID"`
	UserID      int64     `json:"userID"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func (p *KafkaOrderPublisher) PublishOrderEvent(ctx context.Context, eventType string, order model.Order) error {
	payload, err := json.Marshal(orderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		OccurredAt:  time.Now(),
	})
	if err != nil {
		return err
	}

	// order-placed-12 / order-status_updated-12
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%d", eventType, order.ID)),
		Value: payload,
	}
	return p.writer.WriteMessages(ctx, msg)
}
