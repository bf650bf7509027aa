// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package trials

import (
	"github.com/gomlx/membench/pkg/config"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the measured trials, after discarding the warm-up one.
type Stats struct {
	// Count is the number of trials aggregated.
	Count int

	// Min, Mean and Max elapsed seconds.
	Min, Mean, Max float64
}

// ComputeStats aggregates times[1:]: times[0] is the warm-up trial and is never used.
//
// It fails with config.ErrInvalidConfiguration if there are less than 2 times.
func ComputeStats(times []float64) (Stats, error) {
	if len(times) < 2 {
		return Stats{}, errors.Wrapf(config.ErrInvalidConfiguration,
			"at least 2 trials are required to discard the warm-up, got %d", len(times))
	}
	measured := times[1:]
	s := Stats{
		Count: len(measured),
		Min:   floats.Min(measured),
		Max:   floats.Max(measured),
		Mean:  stat.Mean(measured, nil),
	}
	// Rounding of the sum can push the mean slightly out of range when all times are ~equal.
	s.Mean = min(max(s.Mean, s.Min), s.Max)
	return s, nil
}

// Rates derived from the accounting of one kernel invocation and the trial statistics.
//
// GB/s and MFLOPS use binary units: 2^30 bytes and 2^20 operations.
type Rates struct {
	BestGBs, AvgGBs       float64
	BestMFLOPS, AvgMFLOPS float64

	// HasFlops is false for kernels that perform no floating-point operations, in which case
	// the MFLOPS fields are 0.
	HasFlops bool
}

// ComputeRates returns the rates for a kernel that moves bytes and performs flops per
// invocation. Use flops = 0 for kernels without floating-point operations.
func ComputeRates(bytes, flops float64, s Stats) Rates {
	r := Rates{
		BestGBs:  bytes / s.Min / config.GiB,
		AvgGBs:   bytes / s.Mean / config.GiB,
		HasFlops: flops > 0,
	}
	if r.HasFlops {
		r.BestMFLOPS = flops / s.Min / config.MiB
		r.AvgMFLOPS = flops / s.Mean / config.MiB
	}
	return r
}
