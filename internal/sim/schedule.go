// v2
// internal/sim/schedule.go

package sim

import "time"

// Mode is the HVAC operating mode of a room.
type Mode string

const (
	ModeHeating Mode = "heating"
	ModeCooling Mode = "cooling"
	ModeOff     Mode = "off"
)

// RoomProperty is a room's controller setpoint state.
type RoomProperty struct {
	TargetTemperature float64
	Mode              Mode
	FanSpeed          int
}

// updateRoomProperties recomputes every room's target temperature from the
// daily schedule and occasionally reassigns one room's mode. No-op until the
// shared property timer expires.
//
// The schedule boundaries are intentionally not aligned with the occupancy
// table (work hours are exclusive here, sleep hours inclusive); keep them as
// enumerated per routine.
func (s *Simulator) updateRoomProperties(now time.Time) {
	if !now.After(s.propertyChangeAt) {
		return
	}
	hour := s.clock.HourOfDay(now)
	isWeekend := s.clock.IsWeekend(now)

	for _, room := range s.rooms {
		var target float64
		if isWeekend {
			if hour >= 22 || hour <= 7 { // sleep hours
				target = 20.0 + uniform(s.rng, -0.5, 0.5)
			} else { // active hours
				target = 22.0 + uniform(s.rng, -0.5, 0.5)
			}
		} else {
			switch {
			case hour > 8 && hour < 17: // work hours, energy saving
				target = 19.0 + uniform(s.rng, -0.5, 0.5)
			case hour >= 6 && hour <= 8: // morning routine
				target = 22.0 + uniform(s.rng, -0.5, 0.5)
			case hour >= 17 && hour <= 22: // evening home
				target = 22.5 + uniform(s.rng, -0.5, 0.5)
			default: // sleep hours
				target = 20.0 + uniform(s.rng, -0.5, 0.5)
			}
		}
		s.props[room].TargetTemperature = roundTenth(clampf(18, 26, target))
	}

	if s.rng.Float64() < 0.2 {
		room := s.rooms[s.rng.Intn(len(s.rooms))]
		s.reassignMode(room, now)
	}

	s.propertyChangeAt = now.Add(uniformDur(s.rng, 10800, 18000))
	s.log.Info("room properties updated", "hour", hour, "weekend", isWeekend)
}

func (s *Simulator) reassignMode(room string, now time.Time) {
	// Approximate ambient without the weather variation, like the schedule
	// controller sees it.
	approxAmbient := 15.0 + 6.5*s.clock.TimeFactor(now)

	var mode Mode
	switch {
	case approxAmbient > 25:
		mode = ModeCooling
	case approxAmbient < 12:
		mode = ModeHeating
	default:
		choices := []Mode{ModeOff, ModeHeating, ModeCooling}
		mode = choices[s.rng.Intn(len(choices))]
	}

	p := s.props[room]
	p.Mode = mode
	if mode == ModeOff {
		p.FanSpeed = 0
	} else {
		p.FanSpeed = 1 + s.rng.Intn(3)
	}
	s.log.Info("mode reassigned", "room", room, "mode", mode, "fanSpeed", p.FanSpeed)
}
