package engine

import "sync/atomic"

// Clock is a monotonic logical clock stamping committed operations.
// Commit records are ordered by seq, never by wall-clock time.
//
// Thread-safety: atomic; in practice the engine's serialization mutex means
// one caller increments at a time.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
