// v2
// internal/telemetry/kafka.go

package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/techbytesorg/digital-twins/internal/breaker"
)

// messageWriter mirrors the subset of kafka.Writer the sink uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes records to a single topic, keyed per record, guarded by
// a circuit breaker.
type KafkaSink struct {
	writer messageWriter
	brk    *breaker.Breaker
	log    *slog.Logger
}

func newKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
}

func NewKafkaSink(brokers []string, topic string, brk *breaker.Breaker, log *slog.Logger) *KafkaSink {
	return &KafkaSink{
		writer: newKafkaWriter(brokers, topic),
		brk:    brk,
		log:    log.With("component", "kafka-sink"),
	}
}

func (s *KafkaSink) Publish(ctx context.Context, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		s.log.Error("marshal failed", "event", rec.Event(), "err", err)
		PublishFailures.WithLabelValues(rec.Event()).Inc()
		return err
	}
	msg := kafka.Message{Key: []byte(rec.Key()), Value: b, Time: time.Now()}
	err = s.brk.Execute(ctx, func(ctx context.Context) error {
		return s.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		s.log.Error("kafka write failed", "event", rec.Event(), "key", rec.Key(), "err", err)
		PublishFailures.WithLabelValues(rec.Event()).Inc()
		return err
	}
	Published.WithLabelValues(rec.Event()).Inc()
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
