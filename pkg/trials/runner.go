// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package trials runs a kernel a fixed number of times, each trial from an evicted cache, and
// aggregates the elapsed times.
//
// Trials are strictly sequential: trial k+1 starts only after the timing window of trial k is
// closed, so cache perturbation and clock readings are attributable to exactly one trial.
package trials

import (
	"runtime"

	"github.com/gomlx/membench/pkg/clock"
	"github.com/gomlx/membench/pkg/config"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Runnable is the work timed in each trial, typically a kernels.Kernel.
type Runnable interface {
	Run()
}

// Evictor perturbs the caches before a trial, see cache.Evictor.
type Evictor interface {
	Evict()
}

// Phase of a trial.
type Phase int

const (
	// Warmup is the first trial: its time is discarded.
	Warmup Phase = iota

	// Measuring trials are aggregated in the statistics.
	Measuring
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	if p == Warmup {
		return "warmup"
	}
	return "measuring"
}

// PhaseOf returns the phase of the trial with the given index: only index 0 is Warmup.
func PhaseOf(trial int) Phase {
	if trial == 0 {
		return Warmup
	}
	return Measuring
}

// Observer is called after each trial, once its timing window is closed.
type Observer func(trial int, phase Phase, seconds float64)

// Runner executes and times trials.
type Runner struct {
	clock     clock.Clock
	evictor   Evictor
	trials    int
	observers []Observer
}

// NewRunner creates a Runner of numTrials trials. The evictor can be nil, in which case the
// trials run with a hot cache.
//
// It fails with config.ErrInvalidConfiguration if numTrials < 2.
func NewRunner(c clock.Clock, evictor Evictor, numTrials int) (*Runner, error) {
	if c == nil {
		return nil, errors.New("NewRunner requires a clock")
	}
	if numTrials < 2 {
		return nil, errors.Wrapf(config.ErrInvalidConfiguration,
			"# of trials must be >= 2 so one survives the warm-up discard, got %d", numTrials)
	}
	return &Runner{clock: c, evictor: evictor, trials: numTrials}, nil
}

// WithObserver adds an observer called after each trial. It returns the Runner itself.
func (r *Runner) WithObserver(observer Observer) *Runner {
	r.observers = append(r.observers, observer)
	return r
}

// Trials returns the number of trials executed by Run.
func (r *Runner) Trials() int {
	return r.trials
}

// Result of a Runner.Run.
type Result struct {
	// Times has the elapsed seconds of every trial, the warm-up included.
	Times []float64

	// Stats over Times[1:].
	Stats Stats
}

// Run executes the trials over work and returns the elapsed times and their statistics.
func (r *Runner) Run(work Runnable) (*Result, error) {
	times := make([]float64, r.trials)
	for trial := range r.trials {
		if r.evictor != nil {
			r.evictor.Evict()
		}
		t0 := r.clock.Now()
		work.Run()
		times[trial] = clock.Elapsed(r.clock, t0)
		// Make sure the kernel and its buffers are considered live after the timing window.
		runtime.KeepAlive(work)

		phase := PhaseOf(trial)
		klog.V(1).Infof("trial #%d (%s): %.6fs", trial, phase, times[trial])
		for _, observer := range r.observers {
			observer(trial, phase, times[trial])
		}
	}
	stats, err := ComputeStats(times)
	if err != nil {
		return nil, err
	}
	return &Result{Times: times, Stats: stats}, nil
}
