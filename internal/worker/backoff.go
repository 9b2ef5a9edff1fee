package worker

import (
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoff returns base*2^attempt capped at ceiling, plus up to 250ms
// of jitter.
//
//	attempt=0 => base
//	attempt=1 => 2*base
//	attempt=2 => 4*base
func ExponentialBackoff(attempt int, base, ceiling time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	multiple := math.Pow(2, float64(attempt))
	delay := time.Duration(float64(base) * multiple)

	if delay > ceiling || delay <= 0 {
		delay = ceiling
	}

	// small jitter (0–250ms) so replicas don't retry in lockstep
	delay += time.Duration(rand.Intn(250)) * time.Millisecond
	return delay
}
