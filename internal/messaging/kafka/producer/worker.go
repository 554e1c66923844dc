package producer

import (
	"context"
	"time"

	"hrconnect/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const drainBatchSize = 50

// Worker polls the outbox table and relays due events to Kafka.
// Delivery is at-least-once: an event is only marked sent after the
// broker acknowledges the write.
type Worker struct {
	repo   kafka.OutboxRepository
	writer *kafkago.Writer
	logger *zap.Logger
	poll   time.Duration
}

func NewWorker(repo kafka.OutboxRepository, writer *kafkago.Writer, logger *zap.Logger, poll time.Duration) *Worker {
	if poll <= 0 {
		poll = 3 * time.Second
	}
	return &Worker{
		repo:   repo,
		writer: writer,
		logger: logger.Named("kafka.producer.worker"),
		poll:   poll,
	}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.poll))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := w.drain(ctx); err != nil {
				w.logger.Error("drain outbox failed", zap.Error(err))
			}
		}
	}
}

func (w *Worker) drain(ctx context.Context) error {
	events, err := w.repo.ListPending(ctx, drainBatchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	w.logger.Info("draining outbox", zap.Int("count", len(events)))

	for _, event := range events {
		if err := w.publish(ctx, event); err != nil {
			w.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			_ = w.repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			w.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		w.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return nil
}

// publish keys the message by aggregate so a single employee's events
// stay ordered within a partition.
func (w *Worker) publish(ctx context.Context, event kafka.OutboxEvent) error {
	return w.writer.WriteMessages(ctx, kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	})
}
