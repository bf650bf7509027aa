// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"fmt"
	"io"

	"github.com/gomlx/membench/pkg/trials"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
)

// ProgressbarStyle to use. Defaults to the ASCII version.
// Consider "progressbar.ThemeUnicode" for a prettier version.
// But it requires some of the graphical symbols to be supported.
var ProgressbarStyle = progressbar.ThemeASCII

// TrialProgress displays a progress bar of the trials of one kernel.
//
// Its Observe method is a trials.Observer: it's only called after a trial's timing window is
// closed, so drawing the bar is never measured.
type TrialProgress struct {
	name    string
	bar     *progressbar.ProgressBar
	termenv *termenv.Output
}

// NewTrialProgress creates a progress bar for numTrials trials of the kernel name, drawn on w
// (typically os.Stderr, so it doesn't mix with the report).
func NewTrialProgress(w io.Writer, name string, numTrials int) *TrialProgress {
	p := &TrialProgress{
		name:    name,
		termenv: termenv.NewOutput(w),
	}
	p.bar = progressbar.NewOptions(numTrials,
		progressbar.OptionSetDescription(name),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("trials"),
		progressbar.OptionSetTheme(ProgressbarStyle),
		progressbar.OptionClearOnFinish(),
	)
	p.termenv.HideCursor()
	return p
}

// Observe implements trials.Observer.
func (p *TrialProgress) Observe(trial int, phase trials.Phase, seconds float64) {
	p.bar.Describe(fmt.Sprintf("%s [#%d %s: %s]", p.name, trial, phase, FormatSeconds(seconds)))
	_ = p.bar.Add(1)
}

// Finish clears the progress bar and restores the cursor.
func (p *TrialProgress) Finish() {
	_ = p.bar.Finish()
	p.termenv.ShowCursor()
}
