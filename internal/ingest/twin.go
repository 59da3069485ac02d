// v2
// internal/ingest/twin.go

package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// PatchOp is a single JSON-patch operation applied to a twin document.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

var actionColors = map[string]string{
	"heat": "#FFA500",
	"cool": "#1E90FF",
	"off":  "#808080",
}

func colorForAction(action string) string {
	if c, ok := actionColors[action]; ok {
		return c
	}
	return "#808080"
}

// BuildPatch assembles the twin update for a room from its latest stored row
// and the inference outcome. Predicted fan speed and power override the stored
// values when the model returned them.
func BuildPatch(row FeatureRow, action string, fanSpeed *int, power *float64) []PatchOp {
	ts := row.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	pc := row.PowerConsumption
	if power != nil {
		pc = *power
	}
	fs := row.FanSpeed
	if fanSpeed != nil {
		fs = *fanSpeed
	}
	return []PatchOp{
		{Op: "replace", Path: "/currentTemp", Value: row.CurrentTemperature},
		{Op: "replace", Path: "/targetTemp", Value: row.TargetTemperature},
		{Op: "replace", Path: "/humidity", Value: row.Humidity},
		{Op: "replace", Path: "/occupancy", Value: row.Occupancy},
		{Op: "replace", Path: "/occupantCount", Value: row.TotalOccupantCount},
		{Op: "replace", Path: "/ambientTemp", Value: row.AmbientTemperature},
		{Op: "replace", Path: "/ambientHumidity", Value: row.AmbientHumidity},
		{Op: "replace", Path: "/powerConsumption", Value: pc},
		{Op: "replace", Path: "/fanSpeed", Value: fs},
		{Op: "replace", Path: "/hvacAction", Value: action},
		{Op: "replace", Path: "/hvacActionColor", Value: colorForAction(action)},
		{Op: "replace", Path: "/timestamp", Value: ts.Format(time.RFC3339)},
	}
}

// TwinClient patches twin documents over HTTP.
type TwinClient struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
}

func NewTwinClient(baseURL string, log *slog.Logger) *TwinClient {
	return &TwinClient{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		log:     log.With("component", "twin"),
	}
}

func (c *TwinClient) Update(ctx context.Context, roomID string, patch []PatchOp) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode twin patch: %w", err)
	}
	endpoint := c.baseURL + "/twins/" + url.PathEscape(roomID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build twin request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json-patch+json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("patch twin %s: %w", roomID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("patch twin %s: status %d: %s", roomID, resp.StatusCode, string(b))
	}
	return nil
}
