// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gomlx/membench/pkg/bench"
	"github.com/gomlx/membench/pkg/clock"
	"github.com/gomlx/membench/pkg/config"
	"github.com/gomlx/membench/pkg/core/dtypes"
	"github.com/gomlx/membench/pkg/trials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSeconds(t *testing.T) {
	for _, tc := range []struct {
		seconds float64
		want    string
	}{
		{0, "0.00s"},
		{1.5, "1.50s"},
		{0.012345678, "12.35ms"},
		{0.00025, "250.00µs"},
		{5e-9, "5.00ns"},
		{1e-12, "0.00ns"},
		{90, "1.50m"},
		{7200, "2.00h"},
	} {
		assert.Equalf(t, tc.want, FormatSeconds(tc.seconds), "FormatSeconds(%g)", tc.seconds)
	}
}

func TestHumanizeInt(t *testing.T) {
	assert.Equal(t, "1,000", humanizeInt(1000))
	assert.Equal(t, "400,000", humanizeInt(uint32(400000)))
}

func TestTrialProgress(t *testing.T) {
	var buf bytes.Buffer
	progress := NewTrialProgress(&buf, "array_sum", 3)
	var observer trials.Observer = progress.Observe
	observer(0, trials.Warmup, 0.5)
	observer(1, trials.Measuring, 0.25)
	observer(2, trials.Measuring, 0.25)
	progress.Finish()
	assert.Contains(t, buf.String(), "array_sum")
}

func TestSummaryRows(t *testing.T) {
	transpose := config.Config{
		Kernel:        config.BlockedTranspose,
		DType:         dtypes.Float64,
		Trials:        3,
		MatrixN:       9,
		BlockFactor:   4,
		EvictionBytes: 1024,
		Policy:        config.Permissive,
	}
	matMul := config.Config{
		Kernel:   config.NaiveMatMul,
		DType:    dtypes.Float32,
		Trials:   2,
		MatrixM:  4,
		MatrixK:  4,
		MatrixN:  4,
		HotCache: true,
	}
	var summaries []*bench.Summary
	for _, cfg := range []config.Config{transpose, matMul} {
		summary, err := bench.Run(cfg, &bytes.Buffer{}, bench.Options{Clock: clock.NewFakeDurations(1, 1, 1)})
		require.NoError(t, err)
		summaries = append(summaries, summary)
	}

	rows := SummaryRows(summaries)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Len(t, row, len(SummaryHeaders))
	}
	assert.Equal(t, "transposed_blocked", rows[0][0])
	assert.Equal(t, "double", rows[0][1])
	assert.Equal(t, "1.3 KiB", rows[0][2])
	assert.Equal(t, "-", rows[0][6])
	assert.Equal(t, "1.00s", rows[0][7])
	assert.Equal(t, "17 errors", rows[0][8])

	assert.Equal(t, "mat_mult_naive", rows[1][0])
	assert.Equal(t, "float", rows[1][1])
	assert.NotEqual(t, "-", rows[1][6])
	assert.Equal(t, "-", rows[1][8])

	table := SummaryTable(summaries)
	assert.Contains(t, table, "Summary")
	assert.True(t, strings.Contains(table, "mat_mult_naive"))
}
