// v1
// internal/ingest/twin_test.go

package ingest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testRow() FeatureRow {
	return FeatureRow{
		EventType:          "sensor_reading",
		Timestamp:          time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		UnitID:             "001",
		RoomID:             "room1",
		AmbientTemperature: 12.3,
		AmbientHumidity:    58.0,
		CurrentTemperature: 21.4,
		TargetTemperature:  22.0,
		FanSpeed:           1,
		Humidity:           41.2,
		Occupancy:          true,
		PowerConsumption:   870.0,
		TotalOccupantCount: 1,
	}
}

func TestBuildPatchCoversAllTwinProperties(t *testing.T) {
	patch := BuildPatch(testRow(), "heat", nil, nil)
	if len(patch) != 12 {
		t.Fatalf("patch has %d ops, want 12", len(patch))
	}

	want := map[string]bool{
		"/currentTemp": false, "/targetTemp": false, "/humidity": false,
		"/occupancy": false, "/occupantCount": false, "/ambientTemp": false,
		"/ambientHumidity": false, "/powerConsumption": false, "/fanSpeed": false,
		"/hvacAction": false, "/hvacActionColor": false, "/timestamp": false,
	}
	for _, op := range patch {
		if op.Op != "replace" {
			t.Fatalf("op %q on %s, want replace", op.Op, op.Path)
		}
		seen, known := want[op.Path]
		if !known {
			t.Fatalf("unexpected path %s", op.Path)
		}
		if seen {
			t.Fatalf("duplicate path %s", op.Path)
		}
		want[op.Path] = true
	}
}

func TestBuildPatchColorFollowsAction(t *testing.T) {
	cases := []struct {
		action string
		color  string
	}{
		{"heat", "#FFA500"},
		{"cool", "#1E90FF"},
		{"off", "#808080"},
		{"N/A", "#808080"},
		{"", "#808080"},
	}
	for _, tc := range cases {
		patch := BuildPatch(testRow(), tc.action, nil, nil)
		var got string
		for _, op := range patch {
			if op.Path == "/hvacActionColor" {
				got = op.Value.(string)
			}
		}
		if got != tc.color {
			t.Fatalf("action %q: color %q, want %q", tc.action, got, tc.color)
		}
	}
}

func TestBuildPatchPredictionOverrides(t *testing.T) {
	fan := 3
	power := 1100.5
	patch := BuildPatch(testRow(), "cool", &fan, &power)

	vals := map[string]any{}
	for _, op := range patch {
		vals[op.Path] = op.Value
	}
	if vals["/fanSpeed"] != 3 {
		t.Fatalf("fan speed %v, want predicted 3", vals["/fanSpeed"])
	}
	if vals["/powerConsumption"] != 1100.5 {
		t.Fatalf("power %v, want predicted 1100.5", vals["/powerConsumption"])
	}
}

func TestTwinClientPatchesRoom(t *testing.T) {
	var gotMethod, gotPath string
	var gotPatch []PatchOp
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotPatch)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewTwinClient(srv.URL, log)
	patch := BuildPatch(testRow(), "heat", nil, nil)
	if err := c.Update(context.Background(), "room1", patch); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Fatalf("method %q", gotMethod)
	}
	if gotPath != "/twins/room1" {
		t.Fatalf("path %q", gotPath)
	}
	if len(gotPatch) != 12 {
		t.Fatalf("server received %d ops", len(gotPatch))
	}
}

func TestTwinClientRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "twin not found", http.StatusNotFound)
	}))
	defer srv.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewTwinClient(srv.URL, log)
	if err := c.Update(context.Background(), "room9", nil); err == nil {
		t.Fatal("expected error on 404")
	}
}
