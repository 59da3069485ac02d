// v2
// internal/sim/weather.go

package sim

import (
	"math"
	"time"
)

// AmbientConditions are the simulated outdoor readings, recomputed every tick.
type AmbientConditions struct {
	Temperature float64 `json:"ambientTemperature"`
	Humidity    float64 `json:"ambientHumidity"`
}

// ambientConditions derives the outdoor temperature and humidity for now.
// It also redraws the weather variation when its timer has expired, so it is
// not a pure function of its inputs.
func (s *Simulator) ambientConditions(now time.Time) AmbientConditions {
	tf := s.clock.TimeFactor(now)
	hour := s.clock.HourOfDay(now)

	if now.After(s.weatherChangeAt) {
		s.weatherVariation = uniform(s.rng, -3, 3)
		s.weatherChangeAt = now.Add(uniformDur(s.rng, 3600, 7200))
		s.log.Info("weather variation redrawn", "variation", s.weatherVariation)
	}

	// Seasonal average plus daily cycle plus the current weather front.
	temp := 15.0 + 6.5*tf + s.weatherVariation

	humidityVariation := -10*tf + 15*math.Sin(2*math.Pi*float64(hour-3)/24)
	humidity := clampf(30, 90, 60.0+humidityVariation+uniform(s.rng, -5, 5))

	return AmbientConditions{
		Temperature: roundTenth(temp),
		Humidity:    roundTenth(humidity),
	}
}
