// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package bench runs one benchmark: it validates the configuration, allocates the kernel,
// runs the self-check when the kernel has one, times the trials and writes the report.
package bench

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/membench/pkg/cache"
	"github.com/gomlx/membench/pkg/clock"
	"github.com/gomlx/membench/pkg/config"
	"github.com/gomlx/membench/pkg/kernels"
	"github.com/gomlx/membench/pkg/report"
	"github.com/gomlx/membench/pkg/trials"
	"github.com/pbnjay/memory"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Options of a Run. The zero value is the default.
type Options struct {
	// Clock used to time the trials. If nil, a clock.Monotonic is used.
	Clock clock.Clock

	// MemoryLimit in bytes for the kernel and eviction buffers. If 0, the total memory of
	// the host is used, when it is known.
	MemoryLimit uint64

	// Observers are called after each trial.
	Observers []trials.Observer
}

// Summary of a completed Run.
type Summary struct {
	Config     config.Config
	Kernel     string
	Accounting kernels.Accounting
	Warnings   []string

	// SelfChecked is set if the kernel has a self-check, and Mismatches holds the number of
	// incorrect cells it found.
	SelfChecked bool
	Mismatches  int

	Result *trials.Result
	Rates  trials.Rates
}

// Run the benchmark configured by cfg, writing the report to w.
//
// Errors wrapping config.ErrInvalidConfiguration or config.ErrOutOfMemory are returned before
// any trial is timed. Self-check mismatches are reported, and don't stop the run.
func Run(cfg config.Config, w io.Writer, opts Options) (*Summary, error) {
	warnings, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	limit := opts.MemoryLimit
	if limit == 0 {
		limit = memory.TotalMemory()
	}
	if err = cfg.CheckMemory(limit); err != nil {
		return nil, err
	}
	klog.Infof("%s: allocating %s for the kernel buffers and %s for the cache eviction",
		cfg.Kernel, humanize.IBytes(uint64(cfg.WorkingSetBytes())), humanize.IBytes(uint64(cfg.EvictionSize())))

	kernel, err := kernels.New(cfg)
	if err != nil {
		return nil, err
	}
	var evictor trials.Evictor
	if !cfg.HotCache {
		cacheEvictor, err := cache.New(cfg.EvictionSize())
		if err != nil {
			return nil, err
		}
		evictor = cacheEvictor
	}
	c := opts.Clock
	if c == nil {
		c = clock.New()
	}
	runner, err := trials.NewRunner(c, evictor, cfg.Trials)
	if err != nil {
		return nil, err
	}
	for _, observer := range opts.Observers {
		runner.WithObserver(observer)
	}

	summary := &Summary{
		Config:     cfg,
		Kernel:     kernel.Name(),
		Accounting: kernel.Accounting(),
		Warnings:   warnings,
	}
	rep := report.New(w)
	for _, warning := range warnings {
		klog.Warningf("%s: %s", cfg.Kernel, warning)
	}
	if err = rep.Header(HeaderFor(cfg, warnings)); err != nil {
		return nil, errors.Wrapf(err, "%s: failed to write report", cfg.Kernel)
	}

	if checker, ok := kernel.(kernels.SelfChecker); ok {
		summary.SelfChecked = true
		summary.Mismatches = checker.SelfCheck(func(m kernels.Mismatch) {
			rep.Mismatch(m.Row, m.Col)
		})
		if summary.Mismatches > 0 {
			klog.Warningf("%s: self-check found %s incorrect cells", cfg.Kernel,
				humanize.Comma(int64(summary.Mismatches)))
		}
	}

	summary.Result, err = runner.Run(kernel)
	if err != nil {
		return nil, err
	}
	summary.Rates = trials.ComputeRates(summary.Accounting.Bytes, summary.Accounting.Flops, summary.Result.Stats)
	if err = rep.Results(report.Results{Stats: summary.Result.Stats, Rates: summary.Rates}); err != nil {
		return nil, errors.Wrapf(err, "%s: failed to write report", cfg.Kernel)
	}
	return summary, nil
}

// HeaderFor returns the report header of the kernel configured by cfg.
func HeaderFor(cfg config.Config, warnings []string) report.Header {
	h := report.Header{
		Kernel:    cfg.Kernel.String(),
		DataLabel: "Matrix",
		DType:     cfg.DType.CName(),
		Trials:    cfg.Trials,
		SizeLabel: "Matrices",
		Warnings:  warnings,
	}
	switch cfg.Kernel {
	case config.BlockedTranspose:
		h.Size = fmt.Sprintf("%d x %d", cfg.MatrixN, cfg.MatrixN)
		h.BlockFactor = cfg.BlockFactor
	case config.NaiveMatMul:
		h.Size = fmt.Sprintf("C(%d x %d) = A(%d x %d) x B(%d x %d)",
			cfg.MatrixM, cfg.MatrixN, cfg.MatrixM, cfg.MatrixK, cfg.MatrixK, cfg.MatrixN)
	case config.ArraySum:
		h.DataLabel = "Array"
		h.SizeLabel = "Arrays"
		if cfg.SecondLength() != cfg.ArrayLength {
			h.Size = fmt.Sprintf("%d / %d", cfg.ArrayLength, cfg.SecondLength())
		} else {
			h.Size = fmt.Sprintf("%d", cfg.ArrayLength)
		}
	}
	return h
}
