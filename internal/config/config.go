// v3
// internal/config/config.go

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// SinkKind selects the telemetry transport.
type SinkKind string

const (
	SinkKafka SinkKind = "kafka"
	SinkMQTT  SinkKind = "mqtt"
)

// SimulatorConfig holds everything the apartment simulator needs at startup.
type SimulatorConfig struct {
	UnitID     string
	Rooms      []string
	ListenAddr string

	Sink           SinkKind
	KafkaBrokers   []string
	TelemetryTopic string
	MQTTBrokerURL  string
	MQTTTopic      string

	TickInterval time.Duration
	ErrorBackoff time.Duration

	// DurationMinutes > 0 skips the interactive prompt.
	DurationMinutes int
}

// IngestorConfig holds the downstream pipeline settings.
type IngestorConfig struct {
	ListenAddr string

	KafkaBrokers   []string
	TelemetryTopic string
	ConsumerGroup  string

	WarehouseDSN  string
	FeatureTable  string
	InferredTable string

	InferenceURL string
	InferenceKey string

	TwinServiceURL string
}

func loadProps(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load properties file: %w", err)
	}
	lines := strings.Split(string(b), "\n")
	m := map[string]string{}
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "#") || strings.HasPrefix(ln, "//") {
			continue
		}
		kv := strings.SplitN(ln, "=", 2)
		if len(kv) != 2 {
			continue
		}
		m[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return m, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getd(m map[string]string, key string, def time.Duration, log *slog.Logger) time.Duration {
	if v, ok := m[key]; ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warn("invalid duration in properties, using default", "key", key, "val", v, "default", def)
	}
	return def
}

func geti(m map[string]string, key string, def int, log *slog.Logger) int {
	if v, ok := m[key]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn("invalid int in properties, using default", "key", key, "val", v, "default", def)
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LoadSimulator reads env vars plus the optional SIM_PROPERTIES file.
// Missing sink settings are configuration errors and fail before the loop starts.
func LoadSimulator(log *slog.Logger) (SimulatorConfig, error) {
	cfg := SimulatorConfig{
		UnitID:       getEnv("UNIT_ID", "001"),
		Rooms:        []string{"room1", "room2", "room3"},
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		Sink:         SinkKind(getEnv("SINK_KIND", string(SinkKafka))),
		TickInterval: 60 * time.Second,
		ErrorBackoff: 5 * time.Second,
	}

	if propsPath := os.Getenv("SIM_PROPERTIES"); propsPath != "" {
		props, err := loadProps(propsPath)
		if err != nil {
			return SimulatorConfig{}, err
		}
		if v, ok := props["unitId"]; ok && v != "" {
			cfg.UnitID = v
		}
		if v, ok := props["rooms"]; ok && v != "" {
			cfg.Rooms = splitCSV(v)
		}
		cfg.TickInterval = getd(props, "tick_interval", cfg.TickInterval, log)
		cfg.ErrorBackoff = getd(props, "error_backoff", cfg.ErrorBackoff, log)
		cfg.DurationMinutes = geti(props, "duration_minutes", 0, log)
	}

	if v := os.Getenv("SIM_DURATION_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return SimulatorConfig{}, fmt.Errorf("invalid SIM_DURATION_MINUTES: %w", err)
		}
		cfg.DurationMinutes = n
	}

	cfg.TelemetryTopic = getEnv("TELEMETRY_TOPIC", "")
	switch cfg.Sink {
	case SinkKafka:
		cfg.KafkaBrokers = splitCSV(os.Getenv("KAFKA_BROKERS"))
		if len(cfg.KafkaBrokers) == 0 {
			return SimulatorConfig{}, errors.New("KAFKA_BROKERS is required (comma-separated)")
		}
		if cfg.TelemetryTopic == "" {
			return SimulatorConfig{}, errors.New("TELEMETRY_TOPIC is required")
		}
	case SinkMQTT:
		cfg.MQTTBrokerURL = os.Getenv("MQTT_BROKER_URL")
		cfg.MQTTTopic = getEnv("MQTT_TOPIC", cfg.TelemetryTopic)
		if cfg.MQTTBrokerURL == "" {
			return SimulatorConfig{}, errors.New("MQTT_BROKER_URL is required when SINK_KIND=mqtt")
		}
		if cfg.MQTTTopic == "" {
			return SimulatorConfig{}, errors.New("MQTT_TOPIC is required when SINK_KIND=mqtt")
		}
	default:
		return SimulatorConfig{}, fmt.Errorf("unknown SINK_KIND %q", cfg.Sink)
	}

	if len(cfg.Rooms) == 0 {
		return SimulatorConfig{}, errors.New("rooms must not be empty")
	}
	return cfg, nil
}

// LoadIngestor reads the pipeline configuration from env vars.
func LoadIngestor() (IngestorConfig, error) {
	cfg := IngestorConfig{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8081"),
		KafkaBrokers:   splitCSV(os.Getenv("KAFKA_BROKERS")),
		TelemetryTopic: getEnv("TELEMETRY_TOPIC", ""),
		ConsumerGroup:  getEnv("CONSUMER_GROUP", "twin-ingestion"),
		WarehouseDSN:   os.Getenv("WAREHOUSE_DSN"),
		FeatureTable:   os.Getenv("FEATURE_TABLE"),
		InferredTable:  os.Getenv("INFERRED_TABLE"),
		InferenceURL:   os.Getenv("INFERENCE_URL"),
		InferenceKey:   os.Getenv("INFERENCE_KEY"),
		TwinServiceURL: os.Getenv("TWIN_SERVICE_URL"),
	}
	if len(cfg.KafkaBrokers) == 0 {
		return IngestorConfig{}, errors.New("KAFKA_BROKERS is required (comma-separated)")
	}
	if cfg.TelemetryTopic == "" {
		return IngestorConfig{}, errors.New("TELEMETRY_TOPIC is required")
	}
	if cfg.WarehouseDSN == "" {
		return IngestorConfig{}, errors.New("WAREHOUSE_DSN is required")
	}
	if cfg.FeatureTable == "" {
		return IngestorConfig{}, errors.New("FEATURE_TABLE is required")
	}
	if cfg.InferenceURL == "" || cfg.InferenceKey == "" {
		return IngestorConfig{}, errors.New("INFERENCE_URL and INFERENCE_KEY must be configured")
	}
	if cfg.TwinServiceURL == "" {
		return IngestorConfig{}, errors.New("TWIN_SERVICE_URL is not configured")
	}
	return cfg, nil
}
