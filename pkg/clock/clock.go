// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package clock reads wall-clock timestamps for the trial runner.
package clock

import (
	"sync"
	"time"
)

// Clock returns monotonically non-decreasing timestamps in fractional seconds.
type Clock interface {
	Now() float64
}

// Elapsed returns the seconds since t0, a value previously returned by c.Now().
func Elapsed(c Clock, t0 float64) float64 {
	return c.Now() - t0
}

// Monotonic is a Clock backed by Go's monotonic clock reading, with nanosecond resolution.
// Timestamps are relative to the creation of the clock.
type Monotonic struct {
	origin time.Time
}

// New creates a Monotonic clock.
func New() *Monotonic {
	return &Monotonic{origin: time.Now()}
}

// Now implements Clock.
func (m *Monotonic) Now() float64 {
	return time.Since(m.origin).Seconds()
}

// Fake is a Clock that returns scripted timestamps, used for testing.
// Once the script is exhausted it keeps returning the last timestamp.
type Fake struct {
	mu       sync.Mutex
	readings []float64
	next     int
}

// NewFake creates a Fake that returns the given readings in order.
func NewFake(readings ...float64) *Fake {
	return &Fake{readings: readings}
}

// NewFakeDurations creates a Fake whose consecutive pairs of readings are spaced by the
// given durations: it's convenient to script the trial runner, which reads the clock twice
// per trial.
func NewFakeDurations(durations ...float64) *Fake {
	readings := make([]float64, 0, 2*len(durations))
	var current float64
	for _, d := range durations {
		readings = append(readings, current, current+d)
		current += d + 1
	}
	return NewFake(readings...)
}

// Now implements Clock.
func (f *Fake) Now() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.readings) == 0 {
		return 0
	}
	if f.next >= len(f.readings) {
		return f.readings[len(f.readings)-1]
	}
	reading := f.readings[f.next]
	f.next++
	return reading
}

// Reads returns how many times Now was called within the script.
func (f *Fake) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next
}
