// v1
// internal/telemetry/mqtt.go

package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTSink publishes records to a single MQTT topic at QoS 0.
type MQTTSink struct {
	client mqtt.Client
	topic  string
	log    *slog.Logger
}

func NewMQTTSink(brokerURL, topic, clientID string, log *slog.Logger) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("hvac-sim-" + clientID).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", brokerURL, err)
	}
	l := log.With("component", "mqtt-sink")
	l.Info("mqtt connected", "broker", brokerURL, "topic", topic)
	return &MQTTSink{client: client, topic: topic, log: l}, nil
}

func (s *MQTTSink) Publish(_ context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		s.log.Error("marshal failed", "event", rec.Event(), "err", err)
		PublishFailures.WithLabelValues(rec.Event()).Inc()
		return err
	}
	token := s.client.Publish(s.topic, 0, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		s.log.Error("mqtt publish failed", "event", rec.Event(), "err", err)
		PublishFailures.WithLabelValues(rec.Event()).Inc()
		return err
	}
	Published.WithLabelValues(rec.Event()).Inc()
	return nil
}

func (s *MQTTSink) Close() error {
	s.client.Disconnect(250)
	return nil
}
