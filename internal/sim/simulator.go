// v4
// internal/sim/simulator.go

package sim

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/techbytesorg/digital-twins/internal/telemetry"
)

// Initial controller state per room, before the first schedule pass.
var initialProperties = map[string]RoomProperty{
	"room1": {TargetTemperature: 22.0, Mode: ModeCooling, FanSpeed: 2},
	"room2": {TargetTemperature: 21.5, Mode: ModeHeating, FanSpeed: 1},
	"room3": {TargetTemperature: 23.0, Mode: ModeOff, FanSpeed: 0},
}

// Params configures a Simulator. Zero intervals pick the defaults
// (60s ticks, 5s error backoff).
type Params struct {
	UnitID       string
	Rooms        []string
	TickInterval time.Duration
	ErrorBackoff time.Duration
}

// Simulator owns all mutable apartment state and advances it one tick at a
// time. A single loop drives it; the mutex only exists so the HTTP status
// endpoint can snapshot state while the loop runs.
type Simulator struct {
	log  *slog.Logger
	rng  *rand.Rand
	sink telemetry.Sink

	runID        string
	unitID       string
	rooms        []string
	clock        Clock
	tickInterval time.Duration
	errorBackoff time.Duration

	mu sync.RWMutex

	weatherVariation float64
	weatherChangeAt  time.Time

	totalOccupants    int
	occupied          map[string]bool
	occupancyChangeAt time.Time

	props            map[string]*RoomProperty
	propertyChangeAt time.Time

	lastAmbient AmbientConditions
	lastTick    time.Time
}

// New constructs a simulator with all timers randomized relative to now.
func New(p Params, sink telemetry.Sink, rng *rand.Rand, log *slog.Logger, now time.Time) *Simulator {
	if p.TickInterval <= 0 {
		p.TickInterval = 60 * time.Second
	}
	if p.ErrorBackoff <= 0 {
		p.ErrorBackoff = 5 * time.Second
	}

	s := &Simulator{
		log:          log.With("component", "simulator"),
		rng:          rng,
		sink:         sink,
		runID:        uuid.NewString(),
		unitID:       p.UnitID,
		rooms:        append([]string(nil), p.Rooms...),
		clock:        NewClock(now),
		tickInterval: p.TickInterval,
		errorBackoff: p.ErrorBackoff,

		weatherVariation: uniform(rng, -3, 3),
		weatherChangeAt:  now.Add(uniformDur(rng, 3600, 7200)),

		occupied:          make(map[string]bool, len(p.Rooms)),
		occupancyChangeAt: now.Add(uniformDur(rng, 1800, 3600)),

		props:            make(map[string]*RoomProperty, len(p.Rooms)),
		propertyChangeAt: now.Add(uniformDur(rng, 7200, 14400)),
	}

	for _, room := range s.rooms {
		s.occupied[room] = false
		prop := initialProperties[room]
		if prop == (RoomProperty{}) {
			prop = RoomProperty{TargetTemperature: 22.0, Mode: ModeOff, FanSpeed: 0}
		}
		cp := prop
		s.props[room] = &cp
	}
	return s
}

// Tick advances occupancy and schedule state, derives ambient conditions, and
// emits one apartment record plus one record per room in fixed order. Publish
// failures are logged per record and never abort the tick.
func (s *Simulator) Tick(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateOccupancy(now)
	s.updateRoomProperties(now)

	ambient := s.ambientConditions(now)
	s.lastAmbient = ambient
	s.lastTick = now

	ts := telemetry.FormatTimestamp(now)

	apt := telemetry.ApartmentRecord{
		EventType:          telemetry.EventApartmentSummary,
		Timestamp:          ts,
		UnitID:             s.unitID,
		AmbientTemperature: ambient.Temperature,
		AmbientHumidity:    ambient.Humidity,
		TotalOccupantCount: s.totalOccupants,
	}
	if err := s.sink.Publish(ctx, apt); err != nil {
		s.log.Warn("apartment telemetry publish failed", "err", err)
	} else {
		s.log.Info("apartment summary",
			"ambientTemp", ambient.Temperature, "ambientHumidity", ambient.Humidity,
			"occupants", s.totalOccupants)
	}

	for _, room := range s.rooms {
		p := s.props[room]
		rec := telemetry.RoomRecord{
			EventType:          telemetry.EventSensorReading,
			Timestamp:          ts,
			UnitID:             s.unitID,
			RoomID:             room,
			AmbientTemperature: ambient.Temperature,
			AmbientHumidity:    ambient.Humidity,
			CurrentTemperature: s.roomTemperature(room, ambient.Temperature, now),
			TargetTemperature:  p.TargetTemperature,
			FanSpeed:           p.FanSpeed,
			Humidity:           s.roomHumidity(room, ambient.Humidity),
			Occupancy:          s.occupied[room],
			PowerConsumption:   s.powerConsumption(room),
			TotalOccupantCount: s.totalOccupants,
		}
		if err := s.sink.Publish(ctx, rec); err != nil {
			s.log.Warn("room telemetry publish failed", "room", room, "err", err)
			continue
		}
		s.log.Info("room reading",
			"room", room, "temp", rec.CurrentTemperature, "humidity", rec.Humidity,
			"occupied", rec.Occupancy, "power", rec.PowerConsumption, "mode", p.Mode)
	}

	telemetry.Ticks.Inc()
	return ctx.Err()
}

// Run ticks at the configured interval until the duration elapses or ctx is
// cancelled. Tick errors are recoverable: they log and back off briefly. The
// termination check happens only at tick boundaries. Both completion and
// cancellation return nil.
func (s *Simulator) Run(ctx context.Context, duration time.Duration) error {
	end := time.Now().Add(duration)
	s.log.Info("simulation starting",
		"unit", s.unitID, "rooms", strings.Join(s.rooms, ","),
		"duration", duration.String(), "runId", s.runID)

	for time.Now().Before(end) {
		if ctx.Err() != nil {
			s.log.Info("simulation stopped by user")
			return nil
		}
		if err := s.Tick(ctx, time.Now()); err != nil {
			if ctx.Err() != nil {
				s.log.Info("simulation stopped by user")
				return nil
			}
			telemetry.TickErrors.Inc()
			s.log.Error("simulation error", "err", err)
			if !sleepCtx(ctx, s.errorBackoff) {
				s.log.Info("simulation stopped by user")
				return nil
			}
			continue
		}
		if !sleepCtx(ctx, s.tickInterval) {
			s.log.Info("simulation stopped by user")
			return nil
		}
	}

	s.log.Info("simulation completed successfully")
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// RoomSnapshot is one room's state as reported by the status endpoint.
type RoomSnapshot struct {
	TargetTemperature float64 `json:"targetTemperature"`
	Mode              Mode    `json:"mode"`
	FanSpeed          int     `json:"fanSpeed"`
	Occupied          bool    `json:"occupied"`
}

// Snapshot is the status endpoint's view of the simulator.
type Snapshot struct {
	UnitID         string                  `json:"unitId"`
	RunID          string                  `json:"runId"`
	TotalOccupants int                     `json:"totalOccupants"`
	Rooms          map[string]RoomSnapshot `json:"rooms"`
	Ambient        AmbientConditions       `json:"ambient"`
	LastTick       time.Time               `json:"lastTick"`
}

func (s *Simulator) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make(map[string]RoomSnapshot, len(s.rooms))
	for _, room := range s.rooms {
		p := s.props[room]
		rooms[room] = RoomSnapshot{
			TargetTemperature: p.TargetTemperature,
			Mode:              p.Mode,
			FanSpeed:          p.FanSpeed,
			Occupied:          s.occupied[room],
		}
	}
	return Snapshot{
		UnitID:         s.unitID,
		RunID:          s.runID,
		TotalOccupants: s.totalOccupants,
		Rooms:          rooms,
		Ambient:        s.lastAmbient,
		LastTick:       s.lastTick,
	}
}

// countOccupied reports how many rooms are flagged occupied.
func (s *Simulator) countOccupied() int {
	n := 0
	for _, r := range s.rooms {
		if s.occupied[r] {
			n++
		}
	}
	return n
}
