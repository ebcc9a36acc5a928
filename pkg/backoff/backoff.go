// Package backoff computes retry wait durations for the delivery engine.
package backoff

import (
	"math"
	"math/rand"
	"time"
)

// Strategy calculates the delay before a retry attempt.
// Implementations must be safe for concurrent use.
type Strategy interface {
	// NextInterval returns the backoff duration for the given attempt.
	// Attempt starts at 1 for the first retry.
	NextInterval(attempt int) time.Duration
}

// Exponential implements capped exponential backoff with optional jitter.
// Formula: min(Initial * Multiplier^(attempt-1) * (1 ± Jitter), Max).
type Exponential struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64

	// Jitter spreads retry times to avoid coordinated retry storms.
	// Zero keeps the schedule deterministic.
	Jitter float64
}

func (e Exponential) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	initial := e.Initial
	if initial == 0 {
		initial = 500 * time.Millisecond
	}

	max := e.Max
	if max == 0 {
		max = 30 * time.Second
	}

	multiplier := e.Multiplier
	if multiplier == 0 {
		multiplier = 2
	}

	interval := float64(initial) * math.Pow(multiplier, float64(attempt-1))

	if e.Jitter > 0 {
		interval *= 1 + (rand.Float64()*2-1)*e.Jitter
	}

	if interval > float64(max) {
		interval = float64(max)
	}

	return time.Duration(interval)
}

// Fixed returns a constant delay between retries.
type Fixed struct {
	Interval time.Duration
}

func (f Fixed) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return f.Interval
}

// Default is the schedule for generic retryable failures: transient network,
// timeout and server errors tend to clear quickly.
func Default() Strategy {
	return Exponential{
		Initial:    500 * time.Millisecond,
		Max:        30 * time.Second,
		Multiplier: 2,
	}
}

// DefaultRateLimit is the schedule for rate-limited requests. Quota windows
// recover on a coarser timescale, so it starts an order of magnitude later
// under the same cap.
func DefaultRateLimit() Strategy {
	return Exponential{
		Initial:    5 * time.Second,
		Max:        30 * time.Second,
		Multiplier: 2,
	}
}
