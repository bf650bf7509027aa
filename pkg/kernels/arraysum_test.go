// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package kernels

import (
	"testing"

	"github.com/gomlx/membench/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArraySum(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{10, 20, 30}
	arraySum(a, b)
	assert.Equal(t, []float64{11, 22, 33}, a)
	assert.Equal(t, []float64{10, 20, 30}, b)
}

func TestArraySumOverlap(t *testing.T) {
	a := []float32{1, 2, 3}
	arraySum(a, []float32{10, 20})
	assert.Equal(t, []float32{11, 22, 3}, a)

	a = []float32{1, 2}
	b := []float32{10, 20, 30}
	arraySum(a, b)
	assert.Equal(t, []float32{11, 22}, a)
	assert.Equal(t, []float32{10, 20, 30}, b)
}

func TestArraySumKernel(t *testing.T) {
	s, err := NewArraySum[float64](5, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Overlap())
	s.Run()
	s.Run()
	a, b := s.Arrays()
	assert.Equal(t, []float64{1, 2, 3}, b)
	assert.Equal(t, []float64{2, 4, 6, 0, 0}, a)

	acc := s.Accounting()
	assert.Equal(t, 3.0*3*8, acc.Bytes)
	assert.Equal(t, 3.0, acc.Flops)

	_, err = NewArraySum[float32](0, 3)
	require.ErrorIs(t, err, config.ErrInvalidConfiguration)
}
