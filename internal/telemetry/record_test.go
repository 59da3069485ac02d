// v1
// internal/telemetry/record_test.go

package telemetry

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFormatTimestampFixedOffset(t *testing.T) {
	ts := FormatTimestamp(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	if !strings.HasSuffix(ts, "-07:00") {
		t.Fatalf("timestamp must carry the fixed UTC-7 offset, got %q", ts)
	}
	if !strings.HasPrefix(ts, "2026-03-14T05:00:00") {
		t.Fatalf("timestamp not shifted into UTC-7: %q", ts)
	}
}

func TestRoomRecordWireFields(t *testing.T) {
	rec := RoomRecord{
		EventType:          EventSensorReading,
		Timestamp:          FormatTimestamp(time.Now()),
		UnitID:             "001",
		RoomID:             "room2",
		AmbientTemperature: 18.4,
		AmbientHumidity:    55.2,
		CurrentTemperature: 21.7,
		TargetTemperature:  22.0,
		FanSpeed:           2,
		Humidity:           41.3,
		Occupancy:          true,
		PowerConsumption:   845.6,
		TotalOccupantCount: 2,
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{
		"EventType", "Timestamp", "UnitID", "RoomID",
		"AmbientTemperature", "AmbientHumidity", "CurrentTemperature",
		"TargetTemperature", "FanSpeed", "Humidity", "Occupancy",
		"PowerConsumption", "TotalOccupantCount",
	}
	if len(m) != len(want) {
		t.Fatalf("expected %d wire fields, got %d: %v", len(want), len(m), m)
	}
	for _, k := range want {
		if _, ok := m[k]; !ok {
			t.Fatalf("missing wire field %q", k)
		}
	}

	if _, ok := m["Occupancy"].(bool); !ok {
		t.Fatalf("Occupancy must be a bool, got %T", m["Occupancy"])
	}
	if _, ok := m["RoomID"].(string); !ok {
		t.Fatalf("RoomID must be a string, got %T", m["RoomID"])
	}
	if _, ok := m["CurrentTemperature"].(float64); !ok {
		t.Fatalf("CurrentTemperature must be a number, got %T", m["CurrentTemperature"])
	}
	if fs, ok := m["FanSpeed"].(float64); !ok || fs != float64(int(fs)) {
		t.Fatalf("FanSpeed must be an integer, got %v (%T)", m["FanSpeed"], m["FanSpeed"])
	}

	var back RoomRecord
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if back != rec {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, rec)
	}
}

func TestApartmentRecordWireFields(t *testing.T) {
	rec := ApartmentRecord{
		EventType:          EventApartmentSummary,
		Timestamp:          FormatTimestamp(time.Now()),
		UnitID:             "001",
		AmbientTemperature: 14.9,
		AmbientHumidity:    61.0,
		TotalOccupantCount: 1,
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"EventType", "Timestamp", "UnitID", "AmbientTemperature", "AmbientHumidity", "TotalOccupantCount"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("missing wire field %q", k)
		}
	}
	if len(m) != 6 {
		t.Fatalf("expected 6 wire fields, got %d", len(m))
	}
}

func TestRecordKeys(t *testing.T) {
	a := ApartmentRecord{UnitID: "001", EventType: EventApartmentSummary}
	r := RoomRecord{UnitID: "001", RoomID: "room1", EventType: EventSensorReading}
	if a.Key() != "001" {
		t.Fatalf("apartment key: %q", a.Key())
	}
	if r.Key() != "001.room1" {
		t.Fatalf("room key: %q", r.Key())
	}
	if a.Event() != EventApartmentSummary || r.Event() != EventSensorReading {
		t.Fatalf("event names: %q %q", a.Event(), r.Event())
	}
}
