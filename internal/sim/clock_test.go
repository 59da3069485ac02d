// v1
// internal/sim/clock_test.go

package sim

import (
	"math"
	"testing"
	"time"
)

func TestTimeFactorBoundaries(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	c := NewClock(start)

	tests := []struct {
		name  string
		hours float64
		check func(v float64) bool
	}{
		{name: "hour 6 is zero", hours: 6, check: func(v float64) bool { return v == 0 }},
		{name: "hour 18 is sin(pi)", hours: 18, check: func(v float64) bool { return math.Abs(v) < 1e-9 }},
		{name: "hour 12 is positive", hours: 12, check: func(v float64) bool { return v > 0.99 }},
		{name: "hour 0 is negative", hours: 0, check: func(v float64) bool { return v < 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			now := start.Add(time.Duration(tc.hours * float64(time.Hour)))
			got := c.TimeFactor(now)
			if !tc.check(got) {
				t.Fatalf("TimeFactor(hour=%v)=%v", tc.hours, got)
			}
		})
	}
}

func TestClockDerivedQuantities(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	c := NewClock(start)

	now := start.Add(26*time.Hour + 30*time.Minute)
	if got := c.HourOfDay(now); got != 2 {
		t.Fatalf("HourOfDay after 26.5h = %d, want 2", got)
	}
	if got := c.DayOfSimulation(now); got != 1 {
		t.Fatalf("DayOfSimulation after 26.5h = %d, want 1", got)
	}
	if c.IsWeekend(now) {
		t.Fatal("day 1 must not be a weekend")
	}

	saturday := start.Add(5 * 24 * time.Hour)
	if !c.IsWeekend(saturday) {
		t.Fatal("day 5 must be a weekend")
	}
	nextMonday := start.Add(7 * 24 * time.Hour)
	if c.IsWeekend(nextMonday) {
		t.Fatal("day 7 must wrap back to a weekday")
	}
}

func TestHoursElapsedMonotonic(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	c := NewClock(start)
	prev := -1.0
	for i := 0; i < 48; i++ {
		now := start.Add(time.Duration(i) * 30 * time.Minute)
		h := c.HoursElapsed(now)
		if h <= prev {
			t.Fatalf("HoursElapsed not increasing at step %d: %v <= %v", i, h, prev)
		}
		prev = h
	}
}
