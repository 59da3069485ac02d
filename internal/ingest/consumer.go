// v2
// internal/ingest/consumer.go

package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// messageReader mirrors the kafka.Reader surface the consumer needs.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer drains the telemetry topic as part of a consumer group and hands
// each message to the pipeline.
type Consumer struct {
	reader   messageReader
	pipeline *Pipeline
	log      *slog.Logger
}

func NewConsumer(brokers []string, topic, group string, pipeline *Pipeline, log *slog.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  group,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{
		reader:   r,
		pipeline: pipeline,
		log:      log.With("component", "consumer"),
	}
}

// Run blocks until the context is cancelled. Broker errors are retried after
// a short pause rather than terminating the loop.
func (c *Consumer) Run(ctx context.Context) {
	c.log.Info("consumer started")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info("consumer stopped")
				return
			}
			c.log.Warn("broker read failed", "err", err)
			select {
			case <-ctx.Done():
				c.log.Info("consumer stopped")
				return
			case <-time.After(500 * time.Millisecond):
			}
			continue
		}
		c.pipeline.Process(ctx, m.Value)
	}
}

func (c *Consumer) Close() error { return c.reader.Close() }
