package client

import (
	"context"
	"math/rand"
	"time"
)

// jitter spreads each delay over +/-25% of its nominal value.
const jitter = 0.25

// Backoff paces redials of the power service: the delay doubles from Min
// on every failed session and is capped at Max.
type Backoff struct {
	Min, Max time.Duration

	attempt int
	rand    func() float64
}

// NewBackoff returns a Backoff between min and max. A non-positive min is
// raised to one second and max is never below min.
func NewBackoff(min, max time.Duration) *Backoff {
	if min <= 0 {
		min = time.Second
	}
	if max < min {
		max = min
	}
	return &Backoff{Min: min, Max: max, rand: rand.Float64}
}

// Wait sleeps for the next delay. It returns ctx.Err() if ctx is done
// first.
func (b *Backoff) Wait(ctx context.Context) error {
	t := time.NewTimer(b.Next())
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reset starts the next failure sequence from Min again.
func (b *Backoff) Reset() {
	b.attempt = 0
}

// Next returns the delay for the current attempt and advances it.
func (b *Backoff) Next() time.Duration {
	d := b.Min
	for i := 0; i < b.attempt && d < b.Max; i++ {
		d *= 2
	}
	if d > b.Max {
		d = b.Max
	}
	b.attempt++

	d += time.Duration(float64(d) * jitter * (2*b.rand() - 1))
	return min(max(d, b.Min), b.Max)
}
