// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package kernels

import (
	"github.com/gomlx/membench/pkg/config"
	"github.com/gomlx/membench/pkg/core/dtypes"
	"github.com/pkg/errors"
)

// NaiveMatMul computes C = A × B for row-major A (M×K), B (K×N) and C (M×N), with the
// unoptimized triple loop: no blocking, no reordering. It's the baseline for other strategies.
type NaiveMatMul[T dtypes.Float] struct {
	m, k, n int
	a, b, c []T
}

// NewNaiveMatMul creates the kernel with A and B initialized with a deterministic pattern
// with no zeros.
func NewNaiveMatMul[T dtypes.Float](m, k, n int) (*NaiveMatMul[T], error) {
	if m <= 0 || k <= 0 || n <= 0 {
		return nil, errors.Wrapf(config.ErrInvalidConfiguration,
			"matrix multiplication dimensions M=%d, K=%d, N=%d must be positive", m, k, n)
	}
	mm := &NaiveMatMul[T]{m: m, k: k, n: n}
	var err error
	if mm.a, err = allocate[T](m * k); err != nil {
		return nil, err
	}
	if mm.b, err = allocate[T](k * n); err != nil {
		return nil, err
	}
	if mm.c, err = allocate[T](m * n); err != nil {
		return nil, err
	}
	for i := range mm.a {
		mm.a[i] = T(i%17) + 0.5
	}
	for i := range mm.b {
		mm.b[i] = T(i%13) + 0.5
	}
	return mm, nil
}

// Name implements Kernel.
func (mm *NaiveMatMul[T]) Name() string {
	return config.NaiveMatMul.String()
}

// SetInputs copies the row-major values of A (M×K) and B (K×N) into the kernel buffers.
func (mm *NaiveMatMul[T]) SetInputs(a, b []T) error {
	if len(a) != len(mm.a) || len(b) != len(mm.b) {
		return errors.Errorf("SetInputs: A and B must have %d and %d elements, got %d and %d",
			len(mm.a), len(mm.b), len(a), len(b))
	}
	copy(mm.a, a)
	copy(mm.b, b)
	return nil
}

// Result returns the row-major C (M×N). It is owned by the kernel.
func (mm *NaiveMatMul[T]) Result() []T {
	return mm.c
}

// Accounting implements Kernel: A and B are read once per multiply-add, C is written once
// per element.
func (mm *NaiveMatMul[T]) Accounting() Accounting {
	m, k, n := float64(mm.m), float64(mm.k), float64(mm.n)
	return Accounting{
		Bytes: (2*m*n*k + m*n) * elementSize[T](),
		Flops: 2 * m * n * k, // 1 multiplication + 1 sum.
	}
}

// Run implements Kernel.
func (mm *NaiveMatMul[T]) Run() {
	matMulNaive(mm.m, mm.k, mm.n, mm.a, mm.b, mm.c)
}

// matMulNaive accumulates each dot product in a local scalar, so the output buffer is written
// only once per element.
func matMulNaive[T dtypes.Float](m, k, n int, a, b, c []T) {
	for i := range m {
		rowA := a[i*k : (i+1)*k]
		rowC := c[i*n : (i+1)*n]
		for j := range n {
			var t T
			for p, aValue := range rowA {
				t += aValue * b[p*n+j]
			}
			rowC[j] = t
		}
	}
}
