// v1
// internal/sim/sim_test.go
//
// Shared fixtures for the simulation tests.

package sim

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/techbytesorg/digital-twins/internal/telemetry"
)

var simStart = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

// captureSink records everything published to it and can be made to fail.
type captureSink struct {
	recs     []telemetry.Record
	attempts int
	err      error
}

func (c *captureSink) Publish(_ context.Context, rec telemetry.Record) error {
	c.attempts++
	if c.err != nil {
		return c.err
	}
	c.recs = append(c.recs, rec)
	return nil
}

func (c *captureSink) Close() error { return nil }

func newTestSim(seed int64, sink telemetry.Sink) *Simulator {
	if sink == nil {
		sink = &captureSink{}
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := Params{UnitID: "001", Rooms: []string{"room1", "room2", "room3"}}
	return New(p, sink, rand.New(rand.NewSource(seed)), log, simStart)
}
