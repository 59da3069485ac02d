// v2
// internal/sim/sensors.go

package sim

import (
	"math"
	"time"
)

// Per-room temperature offsets; rooms without an entry read as average.
var roomOffsets = map[string]float64{
	"room1": 0.5,
	"room2": -0.3,
	"room3": 0.0,
}

// Fan speed to power multiplier; unknown speeds fall back to 1.0.
var fanMultipliers = map[int]float64{0: 0.1, 1: 0.7, 2: 1.0, 3: 1.3}

// roomTemperature synthesizes a room's current temperature: time-of-day base,
// dampened ambient influence, room offset, occupant heat, and an HVAC pull
// toward the target capped at 2 degrees.
func (s *Simulator) roomTemperature(room string, ambientTemp float64, now time.Time) float64 {
	tf := s.clock.TimeFactor(now)
	baseIndoor := 21.0 + 2.0*tf
	ambientInfluence := (ambientTemp - 15.0) * 0.3

	occupancyHeat := 0.0
	if s.occupied[room] {
		occupancyHeat = 1.5
	}

	base := baseIndoor + ambientInfluence + roomOffsets[room] + occupancyHeat

	p := s.props[room]
	hvac := 0.0
	switch p.Mode {
	case ModeHeating:
		if base < p.TargetTemperature {
			diff := p.TargetTemperature - base
			hvac = math.Min(diff*0.3, 2.0) + uniform(s.rng, 0.2, 0.8)
		}
	case ModeCooling:
		if base > p.TargetTemperature {
			diff := base - p.TargetTemperature
			hvac = -math.Min(diff*0.3, 2.0) - uniform(s.rng, 0.2, 0.8)
		}
	}

	final := base + hvac + uniform(s.rng, -0.3, 0.3)
	return roundTenth(clampf(16, 30, final))
}

// roomHumidity synthesizes indoor humidity, 10-20 points below ambient, with
// occupancy and mode corrections.
func (s *Simulator) roomHumidity(room string, ambientHumidity float64) float64 {
	base := ambientHumidity - uniform(s.rng, 10, 20)

	occupancyHumidity := 0.0
	if s.occupied[room] {
		occupancyHumidity = 5.0
	}

	modeEffect := 0.0
	switch s.props[room].Mode {
	case ModeCooling:
		modeEffect = -uniform(s.rng, 2, 5)
	case ModeHeating:
		modeEffect = -uniform(s.rng, 1, 3)
	}

	final := base + occupancyHumidity + modeEffect + uniform(s.rng, -3, 3)
	return roundTenth(clampf(25, 75, final))
}

// powerConsumption synthesizes the room's HVAC draw in watts: standby 5-15 W
// when off, otherwise mode base power scaled by the fan multiplier.
func (s *Simulator) powerConsumption(room string) float64 {
	p := s.props[room]
	if p.Mode == ModeOff {
		return roundTenth(uniform(s.rng, 5, 15))
	}

	var base float64
	switch p.Mode {
	case ModeHeating:
		base = uniform(s.rng, 800, 1200)
	case ModeCooling:
		base = uniform(s.rng, 600, 1000)
	default:
		base = 10
	}

	mult, ok := fanMultipliers[p.FanSpeed]
	if !ok {
		mult = 1.0
	}

	total := base*mult + uniform(s.rng, -50, 50)
	return roundTenth(math.Max(5.0, total))
}
