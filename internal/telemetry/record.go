// v2
// internal/telemetry/record.go

package telemetry

import "time"

const (
	EventApartmentSummary = "apartment_summary"
	EventSensorReading    = "sensor_reading"
)

// wireZone is the fixed offset carried by every emitted timestamp.
var wireZone = time.FixedZone("UTC-7", -7*3600)

// FormatTimestamp renders t in the wire timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.In(wireZone).Format(time.RFC3339)
}

// Record is anything the sink can publish.
type Record interface {
	// Key partitions the record on keyed transports.
	Key() string
	// Event reports the record's EventType for logging and metrics.
	Event() string
}

// ApartmentRecord is the per-tick apartment summary. Field names are the wire
// contract and must not change.
type ApartmentRecord struct {
	EventType          string  `json:"EventType"`
	Timestamp          string  `json:"Timestamp"`
	UnitID             string  `json:"UnitID"`
	AmbientTemperature float64 `json:"AmbientTemperature"`
	AmbientHumidity    float64 `json:"AmbientHumidity"`
	TotalOccupantCount int     `json:"TotalOccupantCount"`
}

func (r ApartmentRecord) Key() string   { return r.UnitID }
func (r ApartmentRecord) Event() string { return r.EventType }

// RoomRecord is one room's sensor reading for one tick.
type RoomRecord struct {
	EventType          string  `json:"EventType"`
	Timestamp          string  `json:"Timestamp"`
	UnitID             string  `json:"UnitID"`
	RoomID             string  `json:"RoomID"`
	AmbientTemperature float64 `json:"AmbientTemperature"`
	AmbientHumidity    float64 `json:"AmbientHumidity"`
	CurrentTemperature float64 `json:"CurrentTemperature"`
	TargetTemperature  float64 `json:"TargetTemperature"`
	FanSpeed           int     `json:"FanSpeed"`
	Humidity           float64 `json:"Humidity"`
	Occupancy          bool    `json:"Occupancy"`
	PowerConsumption   float64 `json:"PowerConsumption"`
	TotalOccupantCount int     `json:"TotalOccupantCount"`
}

func (r RoomRecord) Key() string   { return r.UnitID + "." + r.RoomID }
func (r RoomRecord) Event() string { return r.EventType }
