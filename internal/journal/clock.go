package journal

import "sync/atomic"

// Clock is a monotonic logical clock stamping journal entries.
//
// Entries are ordered by seq, never by wall-clock time: wall clocks can
// go backwards, logical clocks cannot. Replaying a session reads rows in
// seq order and reproduces the emission order exactly.
//
// Thread-safety: safe for concurrent use (atomic operations), although
// the application's single-writer discipline means one goroutine calls
// Next in practice.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
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
