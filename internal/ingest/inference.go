// v2
// internal/ingest/inference.go

package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Prediction is the control decision for a room. Action is always set: it is
// the model output when the call succeeded, otherwise the caller's fallback.
type Prediction struct {
	Action           string
	ScoredLabel      string
	FanSpeed         *int
	PowerConsumption *float64
	ProbCooling      *float64
	ProbHeating      *float64
	ProbOff          *float64
}

// Client calls the deployed control model's scoring endpoint.
type Client struct {
	url   string
	key   string
	httpc *http.Client
	log   *slog.Logger
}

func NewClient(url, key string, log *slog.Logger) *Client {
	return &Client{
		url:   url,
		key:   key,
		httpc: &http.Client{Timeout: 15 * time.Second},
		log:   log.With("component", "inference"),
	}
}

// Predict scores one feature vector. Inference is advisory: any failure is
// logged and the fallback action is returned, never an error.
func (c *Client) Predict(ctx context.Context, features FeatureVector, fallback string) Prediction {
	pred := Prediction{Action: fallback}
	if c.url == "" {
		return pred
	}

	payload := map[string]any{
		"Inputs":           map[string]any{"input1": []FeatureVector{features}},
		"GlobalParameters": map[string]any{},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.log.Error("failed to encode inference payload", "err", err)
		return pred
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.log.Error("failed to build inference request", "err", err)
		return pred
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error("inference call failed", "err", err)
		InferenceFallbacks.Inc()
		return pred
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error("inference endpoint rejected request", "status", resp.StatusCode, "body", string(raw))
		InferenceFallbacks.Inc()
		return pred
	}

	var parsed struct {
		Results    []map[string]any `json:"Results"`
		AltResults []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.log.Error("failed to decode inference response", "err", err)
		InferenceFallbacks.Inc()
		return pred
	}
	results := parsed.Results
	if len(results) == 0 {
		results = parsed.AltResults
	}
	if len(results) == 0 {
		c.log.Warn("inference response contained no results")
		InferenceFallbacks.Inc()
		return pred
	}

	applyResult(&pred, results[0])
	return pred
}

func applyResult(p *Prediction, res map[string]any) {
	if v, ok := res["ControlAction"].(string); ok && v != "" {
		p.Action = v
	}
	if v, ok := res["Scored Labels"].(string); ok {
		p.ScoredLabel = v
	}
	if f, ok := toFloat(res["FanSpeed"]); ok {
		n := int(f)
		p.FanSpeed = &n
	}
	if f, ok := toFloat(res["PowerConsumption"]); ok {
		p.PowerConsumption = &f
	}
	if f, ok := toFloat(res["Scored Probabilities_cooling"]); ok {
		p.ProbCooling = &f
	}
	if f, ok := toFloat(res["Scored Probabilities_heating"]); ok {
		p.ProbHeating = &f
	}
	if f, ok := toFloat(res["Scored Probabilities_off"]); ok {
		p.ProbOff = &f
	}
}

// toFloat copes with scoring endpoints that return numbers as strings.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
