// v1
// internal/sim/rand.go

package sim

import (
	"math"
	"math/rand"
	"time"
)

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// uniformDur draws a duration of [lo, hi) seconds.
func uniformDur(rng *rand.Rand, lo, hi float64) time.Duration {
	return time.Duration(uniform(rng, lo, hi) * float64(time.Second))
}

func roundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

func clampf(lo, hi, x float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
