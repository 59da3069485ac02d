// v2
// internal/ingest/pipeline.go

package ingest

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/techbytesorg/digital-twins/internal/telemetry"
)

// FeatureLookup fetches the newest stored row for a room.
type FeatureLookup interface {
	LatestByRoom(ctx context.Context, roomID string) (*FeatureRow, error)
}

// InferredWriter persists inference outcomes.
type InferredWriter interface {
	InsertInferred(ctx context.Context, rec InferredRecord) error
}

// Predictor scores a feature vector, returning fallback on any failure.
type Predictor interface {
	Predict(ctx context.Context, features FeatureVector, fallback string) Prediction
}

// TwinUpdater applies a patch to a room twin.
type TwinUpdater interface {
	Update(ctx context.Context, roomID string, patch []PatchOp) error
}

// Pipeline turns one consumed telemetry message into a twin update:
// look up the room's latest warehouse row, score it, patch the twin,
// and persist the inferred row.
type Pipeline struct {
	features  FeatureLookup
	inferred  InferredWriter
	predictor Predictor
	twins     TwinUpdater
	log       *slog.Logger
}

func NewPipeline(features FeatureLookup, inferred InferredWriter, predictor Predictor, twins TwinUpdater, log *slog.Logger) *Pipeline {
	return &Pipeline{
		features:  features,
		inferred:  inferred,
		predictor: predictor,
		twins:     twins,
		log:       log.With("component", "pipeline"),
	}
}

// Process handles one raw message. Every failure is handled here; the
// consumer loop never stops because of a single bad message.
func (p *Pipeline) Process(ctx context.Context, payload []byte) {
	MessagesProcessed.Inc()

	var msg struct {
		EventType    string `json:"EventType"`
		EventTypeAlt string `json:"event_type"`
		RoomID       string `json:"RoomID"`
		RoomIDAlt    string `json:"room_id"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		p.log.Error("failed to decode telemetry message", "err", err)
		MessagesSkipped.WithLabelValues("decode").Inc()
		return
	}

	eventType := strings.ToLower(firstNonEmpty(msg.EventType, msg.EventTypeAlt))
	if eventType != "" && eventType != telemetry.EventSensorReading {
		MessagesSkipped.WithLabelValues("event_type").Inc()
		return
	}
	roomID := firstNonEmpty(msg.RoomID, msg.RoomIDAlt)
	if roomID == "" {
		p.log.Warn("telemetry message has no room id")
		MessagesSkipped.WithLabelValues("no_room").Inc()
		return
	}

	row, err := p.features.LatestByRoom(ctx, roomID)
	if err != nil {
		p.log.Error("feature lookup failed", "room", roomID, "err", err)
		MessagesSkipped.WithLabelValues("lookup").Inc()
		return
	}
	if row == nil {
		p.log.Warn("no stored telemetry for room yet", "room", roomID)
		MessagesSkipped.WithLabelValues("no_row").Inc()
		return
	}

	features := BuildFeatureVector(*row)
	fallback := "N/A"
	if row.ControlAction.Valid && row.ControlAction.String != "" {
		fallback = row.ControlAction.String
	}
	pred := p.predictor.Predict(ctx, features, fallback)

	patch := BuildPatch(*row, pred.Action, pred.FanSpeed, pred.PowerConsumption)
	if err := p.twins.Update(ctx, roomID, patch); err != nil {
		p.log.Error("twin update failed", "room", roomID, "err", err)
		TwinUpdateFailures.Inc()
	} else {
		p.log.Info("twin updated", "room", roomID, "action", pred.Action)
		TwinUpdates.Inc()
	}

	rec := buildInferredRecord(*row, features, pred)
	if err := p.inferred.InsertInferred(ctx, rec); err != nil {
		p.log.Error("failed to persist inferred row", "room", roomID, "err", err)
	}
}

func buildInferredRecord(row FeatureRow, fv FeatureVector, pred Prediction) InferredRecord {
	action := pred.Action
	if pred.ScoredLabel != "" {
		action = pred.ScoredLabel
	}
	fanSpeed := row.FanSpeed
	if pred.FanSpeed != nil {
		fanSpeed = *pred.FanSpeed
	}
	power := row.PowerConsumption
	if pred.PowerConsumption != nil {
		power = *pred.PowerConsumption
	}
	return InferredRecord{
		EventType:          row.EventType,
		Timestamp:          telemetry.FormatTimestamp(row.Timestamp),
		UnitID:             row.UnitID,
		RoomID:             row.RoomID,
		AmbientTemperature: row.AmbientTemperature,
		AmbientHumidity:    row.AmbientHumidity,
		CurrentTemperature: row.CurrentTemperature,
		TargetTemperature:  row.TargetTemperature,
		FanSpeed:           fanSpeed,
		Humidity:           row.Humidity,
		Occupancy:          row.Occupancy,
		PowerConsumption:   power,
		TotalOccupantCount: row.TotalOccupantCount,
		Hour:               fv.Hour,
		DayOfWeek:          fv.DayOfWeek,
		DayOfYear:          fv.DayOfYear,
		TotalPower:         fv.TotalPowerConsumption,
		ControlAction:      action,
		ProbCooling:        pred.ProbCooling,
		ProbHeating:        pred.ProbHeating,
		ProbOff:            pred.ProbOff,
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
