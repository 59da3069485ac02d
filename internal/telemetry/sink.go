// v1
// internal/telemetry/sink.go

package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/techbytesorg/digital-twins/internal/breaker"
	"github.com/techbytesorg/digital-twins/internal/config"
)

// Sink is the append-only publish channel the simulator emits into.
// Publish is fire-and-forget from the simulator's point of view: errors are
// reported but carry no acknowledgment semantics.
type Sink interface {
	Publish(ctx context.Context, rec Record) error
	Close() error
}

// NewSink builds the transport selected by the configuration.
func NewSink(cfg config.SimulatorConfig, log *slog.Logger) (Sink, error) {
	switch cfg.Sink {
	case config.SinkKafka:
		brk := breaker.New("telemetry-writer", breaker.FromEnv(), log)
		return NewKafkaSink(cfg.KafkaBrokers, cfg.TelemetryTopic, brk, log), nil
	case config.SinkMQTT:
		return NewMQTTSink(cfg.MQTTBrokerURL, cfg.MQTTTopic, cfg.UnitID, log)
	default:
		return nil, fmt.Errorf("unknown sink kind %q", cfg.Sink)
	}
}
