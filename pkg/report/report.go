// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package report formats the benchmark report: one labeled line per field, in a fixed order.
//
// It doesn't make any decision: what to report is given by the caller.
package report

import (
	"fmt"
	"io"

	"github.com/gomlx/membench/pkg/trials"
)

// Header of the report, printed before the trials run.
type Header struct {
	Kernel string

	// DataLabel is either "Matrix" or "Array".
	DataLabel string
	DType     string
	Trials    int

	// SizeLabel is either "Matrices" or "Arrays".
	SizeLabel string
	Size      string

	// BlockFactor is only printed if > 0.
	BlockFactor int

	// Warnings are printed after the configuration, one per line.
	Warnings []string
}

// Results of the report, printed after the trials.
type Results struct {
	Stats trials.Stats
	Rates trials.Rates
}

// Reporter writes the report to an io.Writer.
// The first write error is kept, and all later writes are skipped.
type Reporter struct {
	w   io.Writer
	err error
}

// New creates a Reporter that writes to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Err returns the first write error, if any.
func (r *Reporter) Err() error {
	return r.err
}

func (r *Reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) field(label, format string, args ...any) {
	r.printf("%-16s: "+format+"\n", append([]any{label}, args...)...)
}

// Header writes the kernel identity and configuration.
func (r *Reporter) Header(h Header) error {
	r.field("Kernel name", "%s", h.Kernel)
	r.field(h.DataLabel+" datatype", "%s", h.DType)
	r.field("# of runs", "%d", h.Trials)
	r.field(h.SizeLabel+" size", "%s", h.Size)
	if h.BlockFactor > 0 {
		r.field("Blocking factor", "%d", h.BlockFactor)
	}
	for _, warning := range h.Warnings {
		r.printf("WARNING: %s\n", warning)
	}
	return r.err
}

// Mismatch writes one self-check error: the source cell (row, col) differs from the
// destination cell (col, row).
func (r *Reporter) Mismatch(row, col int) {
	r.printf("ERROR: src[%d][%d] != dst[%d][%d]\n", row, col, col, row)
}

// Results writes the rates and times.
func (r *Reporter) Results(res Results) error {
	r.field("Best Rate GB/s", "%6.2f", res.Rates.BestGBs)
	r.field("Avg  Rate GB/s", "%6.2f", res.Rates.AvgGBs)
	if res.Rates.HasFlops {
		r.field("Best MFLOPS", "%6.2f", res.Rates.BestMFLOPS)
		r.field("Avg  MFLOPS", "%6.2f", res.Rates.AvgMFLOPS)
	}
	r.field("Avg time", "%6.2f", res.Stats.Mean)
	r.field("Min time", "%6.2f", res.Stats.Min)
	r.field("Max time", "%6.2f", res.Stats.Max)
	return r.err
}
