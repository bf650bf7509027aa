// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"fmt"
	"math"
)

// durationUnits from the largest to the smallest, with their size in seconds.
var durationUnits = []struct {
	name    string
	seconds float64
}{
	{"h", 3600},
	{"m", 60},
	{"s", 1},
	{"ms", 1e-3},
	{"µs", 1e-6},
	{"ns", 1e-9},
}

// FormatSeconds pretty prints a trial time given in seconds, with 2 decimal places in the
// largest unit that keeps the value >= 1. E.g.: 1.5 -> "1.50s", 0.0123 -> "12.30ms".
func FormatSeconds(seconds float64) string {
	if seconds == 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Sprintf("%.2fs", seconds)
	}
	magnitude := math.Abs(seconds)
	for _, unit := range durationUnits {
		if magnitude >= unit.seconds {
			return fmt.Sprintf("%.2f%s", seconds/unit.seconds, unit.name)
		}
	}
	last := durationUnits[len(durationUnits)-1]
	return fmt.Sprintf("%.2f%s", seconds/last.seconds, last.name)
}
