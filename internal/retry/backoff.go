package retry

import (
	"math"
	"time"
)

// ExponentialDelays builds a delay table of count entries starting at initial
// and growing by multiplier, each entry capped at maxDelay (0 = no cap).
//
// Example:
//
//	retry.ExponentialDelays(time.Second, 2.0, 3, 0) // [1s 2s 4s]
func ExponentialDelays(initial time.Duration, multiplier float64, count int, maxDelay time.Duration) []time.Duration {
	if count <= 0 {
		return nil
	}

	delays := make([]time.Duration, count)
	for i := range delays {
		// initial * (multiplier ^ i), computed in float to avoid overflow
		delay := float64(initial) * math.Pow(multiplier, float64(i))

		if maxDelay > 0 && delay > float64(maxDelay) {
			delay = float64(maxDelay)
		}
		if delay > math.MaxInt64 {
			delay = math.MaxInt64
		}
		delays[i] = time.Duration(delay)
	}
	return delays
}

// delayAt clamps attempt to the table and returns the delay to wait after the
// attempt-th failure (attempt is one-indexed).
func delayAt(delays []time.Duration, attempt int) time.Duration {
	if len(delays) == 0 || attempt < 1 {
		return 0
	}
	idx := attempt - 1
	if idx > len(delays)-1 {
		idx = len(delays) - 1
	}
	return delays[idx]
}
