// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package trials

import (
	"testing"

	"github.com/gomlx/membench/pkg/clock"
	"github.com/gomlx/membench/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder interleaves the evictions and runs in a shared log.
type recorder struct {
	log  []string
	runs int
}

func (r *recorder) Run()   { r.runs++; r.log = append(r.log, "run") }
func (r *recorder) Evict() { r.log = append(r.log, "evict") }

func TestRunner(t *testing.T) {
	rec := &recorder{}
	fake := clock.NewFakeDurations(10, 2, 4, 3)
	var phases []Phase
	var observed []float64
	runner, err := NewRunner(fake, rec, 4)
	require.NoError(t, err)
	runner.WithObserver(func(trial int, phase Phase, seconds float64) {
		require.Equal(t, len(phases), trial)
		phases = append(phases, phase)
		observed = append(observed, seconds)
	})
	assert.Equal(t, 4, runner.Trials())

	result, err := runner.Run(rec)
	require.NoError(t, err)
	assert.Equal(t, 4, rec.runs)
	assert.Equal(t, 8, fake.Reads())
	assert.Equal(t, []string{"evict", "run", "evict", "run", "evict", "run", "evict", "run"}, rec.log)
	assert.Equal(t, []float64{10, 2, 4, 3}, result.Times)
	assert.Equal(t, observed, result.Times)
	assert.Equal(t, []Phase{Warmup, Measuring, Measuring, Measuring}, phases)
	assert.Equal(t, Stats{Count: 3, Min: 2, Mean: 3, Max: 4}, result.Stats)
}

func TestRunnerHotCache(t *testing.T) {
	rec := &recorder{}
	runner, err := NewRunner(clock.NewFakeDurations(1, 1), nil, 2)
	require.NoError(t, err)
	_, err = runner.Run(rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "run"}, rec.log)
}

func TestNewRunnerInvalid(t *testing.T) {
	_, err := NewRunner(clock.New(), nil, 1)
	require.ErrorIs(t, err, config.ErrInvalidConfiguration)
	_, err = NewRunner(nil, nil, 4)
	require.Error(t, err)
}

func TestPhaseOf(t *testing.T) {
	assert.Equal(t, Warmup, PhaseOf(0))
	assert.Equal(t, Measuring, PhaseOf(1))
	assert.Equal(t, Measuring, PhaseOf(99))
	assert.Equal(t, "warmup", Warmup.String())
}
