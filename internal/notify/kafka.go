package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/config"
	"github.com/SergeyBogomolovv/escrow-service/internal/entities"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event is the wire form of a notification.
type Event struct {
	Type                 string    `json:"type"`
	OrderID              string    `json:"order_id"`
	BuyerID              string    `json:"buyer_id,omitempty"`
	SellerID             string    `json:"seller_id,omitempty"`
	Action               string    `json:"action"`
	ActorID              string    `json:"actor_id"`
	ActorRole            string    `json:"actor_role"`
	OrderState           string    `json:"order_state,omitempty"`
	EscrowState          string    `json:"escrow_state,omitempty"`
	Effect               string    `json:"effect"`
	Amount               string    `json:"amount"`
	Currency             string    `json:"currency"`
	PaymentID            string    `json:"payment_id,omitempty"`
	CompensationRequired bool      `json:"compensation_required,omitempty"`
	SentAt               time.Time `json:"sent_at"`
}

type kafkaNotifier struct {
	logger *slog.Logger
	writer MessageWriter
	now    func() time.Time
}

// NewKafkaNotifier publishes notifications to cfg.NotifyTopic without
// waiting for broker acknowledgement.
func NewKafkaNotifier(logger *slog.Logger, cfg config.Kafka) *kafkaNotifier {
	logger = logger.With(slog.String("component", "notifier"))
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.NotifyTopic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("failed to deliver notifications",
					slog.Int("count", len(messages)),
					slog.Any("error", err),
				)
			}
		},
	}
	return newKafkaNotifier(logger, writer)
}

func newKafkaNotifier(logger *slog.Logger, writer MessageWriter) *kafkaNotifier {
	return &kafkaNotifier{
		logger: logger,
		writer: writer,
		now:    time.Now,
	}
}

func (n *kafkaNotifier) Notify(ctx context.Context, msg entities.Notification) error {
	event := Event{
		Type:                 msg.Type,
		OrderID:              msg.OrderID,
		BuyerID:              msg.BuyerID,
		SellerID:             msg.SellerID,
		Action:               string(msg.Action),
		ActorID:              msg.Actor.ID,
		ActorRole:            string(msg.Actor.Role),
		OrderState:           string(msg.Order),
		EscrowState:          string(msg.Escrow),
		Effect:               string(msg.Effect),
		Amount:               msg.Amount.Amount.StringFixed(2),
		Currency:             msg.Amount.Currency,
		PaymentID:            msg.PaymentID,
		CompensationRequired: msg.CompensationRequired,
		SentAt:               n.now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(msg.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

func (n *kafkaNotifier) Close() error {
	return n.writer.Close()
}
