package core

import "time"

// Timestamps are stored at second resolution; Timestamp is the de facto
// row key, so two rows created within the same second can collide.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Clock provides the current time. Stores stamp new rows from a Clock so
// that day-boundary behavior is testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewClock() Clock { return realClock{} }

// FixedClock always returns the time it was set to. Test use only.
type FixedClock struct {
	Time time.Time
}

func (c *FixedClock) Now() time.Time { return c.Time }

func (c *FixedClock) Set(t time.Time) { c.Time = t }

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) { c.Time = c.Time.Add(d) }
