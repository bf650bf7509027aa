// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package kernels

import (
	"fmt"
	"testing"

	"github.com/gomlx/membench/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestBlockedTranspose(t *testing.T) {
	sizes := []struct{ n, block int }{
		{1, 1}, {4, 1}, {4, 2}, {4, 4}, {6, 3}, {12, 4}, {50, 10}, {100, 25},
	}
	for _, size := range sizes {
		t.Run(fmt.Sprintf("%dx%d/block=%d", size.n, size.n, size.block), func(t *testing.T) {
			k, err := NewBlockedTranspose[float64](size.n, size.block, config.Strict)
			require.NoError(t, err)
			k.Run()
			n := size.n
			src, dst := k.Source(), k.Destination()
			for i := range n {
				for j := range n {
					if dst[j*n+i] != src[i*n+j] {
						t.Fatalf("dst[%d][%d]=%g, wanted src[%d][%d]=%g", j, i, dst[j*n+i], i, j, src[i*n+j])
					}
				}
			}
		})
	}
}

func TestBlockedTransposeSmall(t *testing.T) {
	k, err := NewBlockedTranspose[float32](4, 2, config.Strict)
	require.NoError(t, err)
	k.Run()
	want := []float32{
		0, 4, 8, 12,
		1, 5, 9, 13,
		2, 6, 10, 14,
		3, 7, 11, 15,
	}
	require.Equal(t, want, k.Destination())
	assert.Equal(t, float32(4), k.Destination()[0*4+1])
	assert.Equal(t, 2.0*16*4, k.Accounting().Bytes)
	assert.False(t, k.Accounting().HasFlops())
}

func TestBlockedTransposeFloat16(t *testing.T) {
	k, err := NewBlockedTranspose[float16.Float16](8, 4, config.Strict)
	require.NoError(t, err)
	assert.Zero(t, k.SelfCheck(nil))
	assert.Equal(t, float16.Fromfloat32(8), k.Destination()[1])
	assert.Equal(t, 2.0*64*2, k.Accounting().Bytes)
}

func TestBlockedTransposeNotDivisible(t *testing.T) {
	_, err := NewBlockedTranspose[float64](5, 2, config.Strict)
	require.ErrorIs(t, err, config.ErrInvalidConfiguration)
	_, err = NewBlockedTranspose[float64](2, 4, config.Permissive)
	require.ErrorIs(t, err, config.ErrInvalidConfiguration)

	k, err := NewBlockedTranspose[float64](5, 2, config.Permissive)
	require.NoError(t, err)
	assert.Equal(t, 4, k.Covered())
	assert.Equal(t, 2.0*16*8, k.Accounting().Bytes)

	var mismatches []Mismatch
	count := k.SelfCheck(func(m Mismatch) { mismatches = append(mismatches, m) })
	require.Equal(t, 9, count)
	require.Len(t, mismatches, 9)
	for _, m := range mismatches {
		assert.True(t, m.Row == 4 || m.Col == 4, "unexpected mismatch at %+v", m)
	}

	// Cells inside the prefix are transposed, the ones outside are never written.
	dst := k.Destination()
	assert.Equal(t, 5.0, dst[0*5+1])
	assert.Equal(t, 0.0, dst[4*5+0])
	assert.Equal(t, 0.0, dst[0*5+4])
}

func TestSelfCheckIsIdempotent(t *testing.T) {
	for _, policy := range []config.Policy{config.Strict, config.Permissive} {
		n := 12
		if policy == config.Permissive {
			n = 13
		}
		k, err := NewBlockedTranspose[float64](n, 4, policy)
		require.NoError(t, err)
		var first, second []Mismatch
		c1 := k.SelfCheck(func(m Mismatch) { first = append(first, m) })
		// Dirty the destination, the self-check must not depend on it.
		for i := range k.Destination() {
			k.Destination()[i] = -1
		}
		c2 := k.SelfCheck(func(m Mismatch) { second = append(second, m) })
		assert.Equal(t, c1, c2)
		assert.Equal(t, first, second)
		if policy == config.Strict {
			assert.Zero(t, c1)
		} else {
			assert.Equal(t, 13*13-12*12, c1)
		}
	}
}

func TestBlockedTransposePatternIsExact(t *testing.T) {
	small, err := NewBlockedTranspose[float16.Float16](45, 5, config.Strict)
	require.NoError(t, err)
	assert.True(t, small.PatternIsExact())

	large, err := NewBlockedTranspose[float16.Float16](46, 2, config.Strict)
	require.NoError(t, err)
	assert.False(t, large.PatternIsExact())
	distinct := make(map[float16.Float16]bool)
	for _, v := range large.Source() {
		distinct[v] = true
	}
	assert.Less(t, len(distinct), 46*46)
	// The self-check still passes: only its ability to detect misplaced cells is reduced.
	assert.Zero(t, large.SelfCheck(nil))

	wide, err := NewBlockedTranspose[float32](1000, 250, config.Strict)
	require.NoError(t, err)
	assert.True(t, wide.PatternIsExact())
}
