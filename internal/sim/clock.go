// v2
// internal/sim/clock.go

package sim

import (
	"math"
	"time"
)

// Clock derives all time-of-day quantities from the elapsed simulation time,
// not from the wall-clock hour. Day 0 starts at construction; days 5 and 6 of
// each simulated week are the weekend.
type Clock struct {
	start time.Time
}

func NewClock(start time.Time) Clock {
	return Clock{start: start}
}

func (c Clock) HoursElapsed(now time.Time) float64 {
	return now.Sub(c.start).Hours()
}

func (c Clock) HourOfDay(now time.Time) int {
	return int(math.Mod(c.HoursElapsed(now), 24))
}

func (c Clock) DayOfSimulation(now time.Time) int {
	return int(c.HoursElapsed(now) / 24)
}

func (c Clock) IsWeekend(now time.Time) bool {
	return c.DayOfSimulation(now)%7 >= 5
}

// TimeFactor is the sinusoidal "how warm is it right now" signal, zero at
// hour 6, positive through the day, negative through the night.
func (c Clock) TimeFactor(now time.Time) float64 {
	return math.Sin(2 * math.Pi * float64(c.HourOfDay(now)-6) / 24)
}
