// v2
// internal/ingest/store.go

package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
)

// Store reads feature rows from and writes inferred rows to the warehouse.
type Store struct {
	db            *sql.DB
	featureTable  string
	inferredTable string
	log           *slog.Logger
}

// OpenStore connects to the warehouse and verifies the connection. An empty
// inferredTable disables persistence of inference results.
func OpenStore(ctx context.Context, dsn, featureTable, inferredTable string, log *slog.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping warehouse: %w", err)
	}
	l := log.With("component", "store")
	if inferredTable == "" {
		l.Warn("inferred rows will not be persisted", "reason", "no inferred table configured")
	}
	return &Store{db: db, featureTable: featureTable, inferredTable: inferredTable, log: l}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// LatestByRoom returns the newest telemetry row for a room, or nil when the
// room has no rows yet.
func (s *Store) LatestByRoom(ctx context.Context, roomID string) (*FeatureRow, error) {
	q := fmt.Sprintf(`SELECT event_type, ts, unit_id, room_id,
		ambient_temperature, ambient_humidity, current_temperature, target_temperature,
		fan_speed, humidity, occupancy, power_consumption, total_occupant_count,
		hour, day_of_week, day_of_year, total_power_consumption, control_action
		FROM %s WHERE room_id = $1 ORDER BY ts DESC LIMIT 1`, pq.QuoteIdentifier(s.featureTable))

	var r FeatureRow
	err := s.db.QueryRowContext(ctx, q, roomID).Scan(
		&r.EventType, &r.Timestamp, &r.UnitID, &r.RoomID,
		&r.AmbientTemperature, &r.AmbientHumidity, &r.CurrentTemperature, &r.TargetTemperature,
		&r.FanSpeed, &r.Humidity, &r.Occupancy, &r.PowerConsumption, &r.TotalOccupantCount,
		&r.Hour, &r.DayOfWeek, &r.DayOfYear, &r.TotalPowerConsumption, &r.ControlAction,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest feature row for %s: %w", roomID, err)
	}
	return &r, nil
}

// InferredRecord is one inference outcome persisted back to the warehouse.
type InferredRecord struct {
	EventType          string
	Timestamp          string
	UnitID             string
	RoomID             string
	AmbientTemperature float64
	AmbientHumidity    float64
	CurrentTemperature float64
	TargetTemperature  float64
	FanSpeed           int
	Humidity           float64
	Occupancy          bool
	PowerConsumption   float64
	TotalOccupantCount int
	Hour               int
	DayOfWeek          int
	DayOfYear          int
	TotalPower         *float64
	ControlAction      string
	ProbCooling        *float64
	ProbHeating        *float64
	ProbOff            *float64
}

func (s *Store) InsertInferred(ctx context.Context, rec InferredRecord) error {
	if s.inferredTable == "" {
		return nil
	}
	q := fmt.Sprintf(`INSERT INTO %s (event_type, ts, unit_id, room_id,
		ambient_temperature, ambient_humidity, current_temperature, target_temperature,
		fan_speed, humidity, occupancy, power_consumption, total_occupant_count,
		hour, day_of_week, day_of_year, total_power_consumption, control_action,
		prob_cooling, prob_heating, prob_off)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		pq.QuoteIdentifier(s.inferredTable))

	_, err := s.db.ExecContext(ctx, q,
		rec.EventType, rec.Timestamp, rec.UnitID, rec.RoomID,
		rec.AmbientTemperature, rec.AmbientHumidity, rec.CurrentTemperature, rec.TargetTemperature,
		rec.FanSpeed, rec.Humidity, rec.Occupancy, rec.PowerConsumption, rec.TotalOccupantCount,
		rec.Hour, rec.DayOfWeek, rec.DayOfYear, rec.TotalPower, rec.ControlAction,
		rec.ProbCooling, rec.ProbHeating, rec.ProbOff,
	)
	if err != nil {
		return fmt.Errorf("insert inferred row for %s: %w", rec.RoomID, err)
	}
	return nil
}
