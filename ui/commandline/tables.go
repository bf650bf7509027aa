// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/membench/pkg/bench"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	redRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}).
			Bold(true).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

// TableWithReds is a table where some rows can be highlighted in red.
type TableWithReds struct {
	Table *lgtable.Table
	Count int
	Reds  map[int]bool
}

// Row appends a row, highlighted if isRed.
func (t *TableWithReds) Row(isRed bool, row ...string) {
	if isRed {
		t.Reds[t.Count] = true
	}
	t.Table.Row(row...)
	t.Count++
}

func newPlainTableWithReds(alignments ...lipgloss.Position) *TableWithReds {
	t := &TableWithReds{
		Reds: make(map[int]bool),
	}
	t.Table = lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row < 0 {
				s = headerRowStyle
				return
			}
			if t.Reds[row] {
				s = redRowStyle
			} else {
				switch {
				case row%2 == 0:
					// Even row style.
					s = oddRowStyle
				default:
					// Odd row style
					s = evenRowStyle
				}
			}
			alignment := lipgloss.Left
			if col < len(alignments) {
				alignment = alignments[col]
			} else if len(alignments) > 0 {
				alignment = alignments[len(alignments)-1]
			}
			s = s.Align(alignment)
			return
		})
	return t
}

// SummaryHeaders are the columns of the summary table.
var SummaryHeaders = []string{
	"Kernel", "DType", "Working set", "Trials", "Best GB/s", "Avg GB/s", "Best MFLOPS", "Min time", "Self-check",
}

// SummaryRows returns one row per completed run, in the order of SummaryHeaders.
func SummaryRows(summaries []*bench.Summary) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		mflops := "-"
		if s.Rates.HasFlops {
			mflops = fmt.Sprintf("%.2f", s.Rates.BestMFLOPS)
		}
		check := "-"
		if s.SelfChecked {
			check = "ok"
			if s.Mismatches > 0 {
				check = humanizeInt(s.Mismatches) + " errors"
			}
		}
		rows = append(rows, []string{
			s.Kernel,
			s.Config.DType.CName(),
			humanize.IBytes(uint64(s.Config.WorkingSetBytes())),
			humanizeInt(s.Config.Trials),
			fmt.Sprintf("%.2f", s.Rates.BestGBs),
			fmt.Sprintf("%.2f", s.Rates.AvgGBs),
			mflops,
			FormatSeconds(s.Result.Stats.Min),
			check,
		})
	}
	return rows
}

// SummaryTable renders a table comparing side by side the given runs. Runs whose self-check
// found mismatches are highlighted.
func SummaryTable(summaries []*bench.Summary) string {
	table := newPlainTableWithReds(lipgloss.Left, lipgloss.Left, lipgloss.Right)
	table.Table.Headers(SummaryHeaders...)
	for ii, row := range SummaryRows(summaries) {
		table.Row(summaries[ii].Mismatches > 0, row...)
	}
	return titleStyle.Render("Summary") + "\n" + table.Table.Render()
}
