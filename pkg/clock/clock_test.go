// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonotonic(t *testing.T) {
	c := New()
	t0 := c.Now()
	previous := t0
	for range 1000 {
		current := c.Now()
		require.GreaterOrEqual(t, current, previous)
		previous = current
	}
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, Elapsed(c, t0), 0.002)
}

func TestFake(t *testing.T) {
	f := NewFake(1, 1.5, 4)
	assert.Equal(t, 1.0, f.Now())
	assert.Equal(t, 0.5, Elapsed(f, 1))
	assert.Equal(t, 4.0, f.Now())
	assert.Equal(t, 4.0, f.Now())
	assert.Equal(t, 3, f.Reads())

	f = NewFakeDurations(0.25, 2)
	t0 := f.Now()
	assert.Equal(t, 0.25, Elapsed(f, t0))
	t0 = f.Now()
	assert.Equal(t, 2.0, Elapsed(f, t0))
}
