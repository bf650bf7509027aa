// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package commandline contains convenience UI tools for running the benchmarks from the
// command line: a progress bar for the trials and a summary table of several runs.
//
// Everything here writes to the terminal around the report, never inside a trial's timing window.
package commandline

import (
	"github.com/dustin/go-humanize"
	"golang.org/x/exp/constraints"
)

// humanizeInt formats integers with thousands separators.
func humanizeInt[I constraints.Integer](n I) string {
	return humanize.Comma(int64(n))
}
