// v2
// internal/ingest/features.go

package ingest

import (
	"database/sql"
	"time"
)

// FeatureRow is the most recent stored telemetry row for a room, as read back
// from the warehouse feature table.
type FeatureRow struct {
	EventType          string
	Timestamp          time.Time
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

	// Enrichment columns, present only on rows written by the inference path.
	Hour                  sql.NullInt64
	DayOfWeek             sql.NullInt64
	DayOfYear             sql.NullInt64
	TotalPowerConsumption sql.NullFloat64
	ControlAction         sql.NullString
}

// FeatureVector is the payload handed to the inference endpoint. Field names
// match the model's trained input schema.
type FeatureVector struct {
	RoomID                string   `json:"RoomID"`
	AmbientTemperature    float64  `json:"AmbientTemperature"`
	AmbientHumidity       float64  `json:"AmbientHumidity"`
	CurrentTemperature    float64  `json:"CurrentTemperature"`
	TargetTemperature     float64  `json:"TargetTemperature"`
	FanSpeed              int      `json:"FanSpeed"`
	Humidity              float64  `json:"Humidity"`
	Occupancy             bool     `json:"Occupancy"`
	PowerConsumption      float64  `json:"PowerConsumption"`
	TotalOccupantCount    int      `json:"TotalOccupantCount"`
	Hour                  int      `json:"Hour"`
	DayOfWeek             int      `json:"DayOfWeek"`
	DayOfYear             int      `json:"DayOfYear"`
	TotalPowerConsumption *float64 `json:"TotalPowerConsumption"`
}

// BuildFeatureVector maps a stored row onto the model input. Time-derived
// fields fall back to the row timestamp when the row does not carry them.
// DayOfWeek counts Monday as 0.
func BuildFeatureVector(row FeatureRow) FeatureVector {
	fv := FeatureVector{
		RoomID:             row.RoomID,
		AmbientTemperature: row.AmbientTemperature,
		AmbientHumidity:    row.AmbientHumidity,
		CurrentTemperature: row.CurrentTemperature,
		TargetTemperature:  row.TargetTemperature,
		FanSpeed:           row.FanSpeed,
		Humidity:           row.Humidity,
		Occupancy:          row.Occupancy,
		PowerConsumption:   row.PowerConsumption,
		TotalOccupantCount: row.TotalOccupantCount,
	}

	if row.Hour.Valid {
		fv.Hour = int(row.Hour.Int64)
	} else {
		fv.Hour = row.Timestamp.Hour()
	}
	if row.DayOfWeek.Valid {
		fv.DayOfWeek = int(row.DayOfWeek.Int64)
	} else {
		fv.DayOfWeek = (int(row.Timestamp.Weekday()) + 6) % 7
	}
	if row.DayOfYear.Valid {
		fv.DayOfYear = int(row.DayOfYear.Int64)
	} else {
		fv.DayOfYear = row.Timestamp.YearDay()
	}
	if row.TotalPowerConsumption.Valid {
		v := row.TotalPowerConsumption.Float64
		fv.TotalPowerConsumption = &v
	}
	return fv
}
