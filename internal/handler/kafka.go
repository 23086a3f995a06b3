package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/config"
	"github.com/SergeyBogomolovv/escrow-service/internal/entities"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

type PaymentCapturer interface {
	CapturePayment(ctx context.Context, orderID string, capture entities.Capture) (entities.TransitionResult, error)
}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaHandler struct {
	dlq      MessageWriter
	reader   MessageReader
	logger   *slog.Logger
	validate *validator.Validate
	capturer PaymentCapturer
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, capturer PaymentCapturer) *kafkaHandler {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.CaptureTopic,
		MaxWait: cfg.ReaderMaxWait,
	})
	dlq := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
	}
	return newKafkaHandler(logger, reader, dlq, capturer)
}

func newKafkaHandler(logger *slog.Logger, reader MessageReader, dlq MessageWriter, capturer PaymentCapturer) *kafkaHandler {
	return &kafkaHandler{
		logger:   logger.With(slog.String("handler", "kafka")),
		reader:   reader,
		dlq:      dlq,
		validate: newValidator(),
		capturer: capturer,
	}
}

// Consume applies capture events until ctx is done. Delivery is
// at-least-once: replays of an applied capture are no-ops.
func (h *kafkaHandler) Consume(ctx context.Context) error {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		if !h.process(ctx, m) {
			continue
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

// process reports whether m may be committed.
func (h *kafkaHandler) process(ctx context.Context, m kafka.Message) bool {
	capturesInProgress.Inc()
	defer capturesInProgress.Dec()
	start := time.Now()
	defer func() { captureProcessingDuration.Observe(time.Since(start).Seconds()) }()

	err := h.handleCapture(ctx, m)
	switch {
	case err == nil:
		capturesProcessed.Inc()
		return true
	case errors.Is(err, entities.ErrInvalidTransition), errors.Is(err, entities.ErrUnauthorized):
		// already announced as capture_rejected, nothing to retry
		capturesRejected.Inc()
		h.logger.Warn("capture rejected", slog.String("key", string(m.Key)), slog.Any("error", err))
		return true
	}

	capturesFailed.Inc()
	h.logger.Error("failed to handle capture", slog.String("key", string(m.Key)), slog.Any("error", err))

	// kafka-go retries the write itself
	if err := h.WriteToDLQ(ctx, m); err != nil {
		h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
		return false
	}
	capturesDLQ.Inc()
	return true
}

func (h *kafkaHandler) handleCapture(ctx context.Context, m kafka.Message) error {
	var event PaymentCaptured
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal capture: %w", err)
	}

	if err := h.validate.Struct(event); err != nil {
		return fmt.Errorf("invalid capture data: %w", err)
	}

	amount, err := MoneyJSONToEntity(event.Amount, strings.ToUpper(event.Currency))
	if err != nil {
		return fmt.Errorf("invalid capture amount: %w", err)
	}

	_, err = h.capturer.CapturePayment(ctx, event.OrderID, entities.Capture{
		PaymentID: event.PaymentID,
		Amount:    amount,
	})
	return err
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	dead := kafka.Message{
		Topic:   fmt.Sprintf("%s-dlq", m.Topic),
		Key:     m.Key,
		Value:   m.Value,
		Headers: m.Headers,
	}
	return h.dlq.WriteMessages(ctx, dead)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
