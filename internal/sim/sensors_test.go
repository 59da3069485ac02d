// v1
// internal/sim/sensors_test.go

package sim

import (
	"math"
	"testing"
	"time"
)

// nightBase mirrors the temperature components without the HVAC term.
func nightBase(s *Simulator, room string, ambientTemp float64, now time.Time) float64 {
	tf := s.clock.TimeFactor(now)
	base := 21.0 + 2.0*tf + (ambientTemp-15.0)*0.3 + roomOffsets[room]
	if s.occupied[room] {
		base += 1.5
	}
	return base
}

func TestHeatingRaisesNightTemperature(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		s := newTestSim(seed, nil)
		now := simStart.Add(2 * time.Hour) // night, time factor well below zero
		s.props["room1"] = &RoomProperty{TargetTemperature: 22.0, Mode: ModeHeating, FanSpeed: 2}
		s.occupied["room1"] = false

		ambient := 15.0
		base := nightBase(s, "room1", ambient, now)
		if base >= 22.0 {
			t.Fatalf("scenario broken: base %v not below target", base)
		}

		got := s.roomTemperature("room1", ambient, now)
		// Minimum HVAC lift is min(diff*0.3, 2.0)+0.2, jitter at worst -0.3.
		if got <= roundTenth(base) {
			t.Fatalf("seed %d: heating must raise temperature above base %v, got %v", seed, base, got)
		}
	}
}

func TestCoolingLowersTemperature(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		s := newTestSim(seed, nil)
		now := simStart.Add(12 * time.Hour) // warm afternoon
		s.props["room1"] = &RoomProperty{TargetTemperature: 18.0, Mode: ModeCooling, FanSpeed: 3}
		s.occupied["room1"] = true

		ambient := 24.0
		base := nightBase(s, "room1", ambient, now)
		if base <= 18.0 {
			t.Fatalf("scenario broken: base %v not above target", base)
		}

		got := s.roomTemperature("room1", ambient, now)
		if got >= roundTenth(base) {
			t.Fatalf("seed %d: cooling must pull temperature below base %v, got %v", seed, base, got)
		}
	}
}

func TestTemperatureClamped(t *testing.T) {
	s := newTestSim(20, nil)
	for h := 0; h < 48; h++ {
		now := simStart.Add(time.Duration(h) * time.Hour)
		for _, room := range s.rooms {
			got := s.roomTemperature(room, 25.0, now)
			if got < 16 || got > 30 {
				t.Fatalf("hour %d %s: temperature out of [16,30]: %v", h, room, got)
			}
		}
	}
}

func TestOffModePowerIsStandby(t *testing.T) {
	s := newTestSim(21, nil)
	// Fan speed is deliberately nonzero: standby draw ignores it.
	s.props["room3"] = &RoomProperty{TargetTemperature: 23.0, Mode: ModeOff, FanSpeed: 3}
	for i := 0; i < 200; i++ {
		got := s.powerConsumption("room3")
		if got < 5 || got > 15 {
			t.Fatalf("standby power out of [5,15]: %v", got)
		}
	}
}

func TestHeatingPowerScalesWithFan(t *testing.T) {
	s := newTestSim(22, nil)
	s.props["room1"] = &RoomProperty{TargetTemperature: 22.0, Mode: ModeHeating, FanSpeed: 3}
	for i := 0; i < 200; i++ {
		got := s.powerConsumption("room1")
		// 800..1200 W times 1.3, plus ±50 W.
		if got < 990 || got > 1610 {
			t.Fatalf("heating fan-3 power out of [990,1610]: %v", got)
		}
	}
}

func TestCoolingLowFanPowerFloored(t *testing.T) {
	s := newTestSim(23, nil)
	s.props["room2"] = &RoomProperty{TargetTemperature: 21.0, Mode: ModeCooling, FanSpeed: 0}
	for i := 0; i < 500; i++ {
		got := s.powerConsumption("room2")
		if got < 5.0 {
			t.Fatalf("power below the 5 W floor: %v", got)
		}
		if got > 150 {
			t.Fatalf("cooling fan-0 power too high: %v", got)
		}
	}
}

func TestUnknownFanSpeedDefaultsToUnitMultiplier(t *testing.T) {
	s := newTestSim(24, nil)
	s.props["room1"] = &RoomProperty{TargetTemperature: 22.0, Mode: ModeHeating, FanSpeed: 7}
	for i := 0; i < 200; i++ {
		got := s.powerConsumption("room1")
		if got < 750 || got > 1250 {
			t.Fatalf("unknown fan speed must use multiplier 1.0, power %v", got)
		}
	}
}

func TestHumidityBoundsAndOccupancyLift(t *testing.T) {
	s := newTestSim(25, nil)
	s.props["room1"] = &RoomProperty{TargetTemperature: 22.0, Mode: ModeCooling, FanSpeed: 1}

	for i := 0; i < 500; i++ {
		s.occupied["room1"] = i%2 == 0
		got := s.roomHumidity("room1", 60.0)
		if got < 25 || got > 75 {
			t.Fatalf("humidity out of [25,75]: %v", got)
		}
	}
}

func TestHumidityRoundedToTenth(t *testing.T) {
	s := newTestSim(26, nil)
	for i := 0; i < 50; i++ {
		got := s.roomHumidity("room2", 55.0)
		if math.Abs(got*10-math.Round(got*10)) > 1e-9 {
			t.Fatalf("humidity not rounded to 0.1: %v", got)
		}
	}
}
