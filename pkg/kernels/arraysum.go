// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package kernels

import (
	"github.com/gomlx/membench/pkg/config"
	"github.com/gomlx/membench/pkg/core/dtypes"
	"github.com/pkg/errors"
)

// ArraySum accumulates the array b into the array a: a[i] += b[i].
//
// If the arrays have different lengths only the first min(len(a), len(b)) elements of a
// are updated, and the rest is left unmodified.
type ArraySum[T dtypes.Float] struct {
	a, b []T
}

// NewArraySum creates the kernel with a zeroed and b[i] = 1 + i%10.
func NewArraySum[T dtypes.Float](lenA, lenB int) (*ArraySum[T], error) {
	if lenA <= 0 || lenB <= 0 {
		return nil, errors.Wrapf(config.ErrInvalidConfiguration,
			"array lengths (%d, %d) must be positive", lenA, lenB)
	}
	s := &ArraySum[T]{}
	var err error
	if s.a, err = allocate[T](lenA); err != nil {
		return nil, err
	}
	if s.b, err = allocate[T](lenB); err != nil {
		return nil, err
	}
	for i := range s.b {
		s.b[i] = T(1 + i%10)
	}
	return s, nil
}

// Name implements Kernel.
func (s *ArraySum[T]) Name() string {
	return config.ArraySum.String()
}

// Arrays returns a and b. They are owned by the kernel.
func (s *ArraySum[T]) Arrays() (a, b []T) {
	return s.a, s.b
}

// Overlap returns the number of elements updated by each Run.
func (s *ArraySum[T]) Overlap() int {
	return min(len(s.a), len(s.b))
}

// Accounting implements Kernel: 2 reads and 1 write per updated element, and one sum.
func (s *ArraySum[T]) Accounting() Accounting {
	overlap := float64(s.Overlap())
	return Accounting{
		Bytes: 3 * overlap * elementSize[T](),
		Flops: overlap,
	}
}

// Run implements Kernel.
func (s *ArraySum[T]) Run() {
	arraySum(s.a, s.b)
}

// arraySum is also used directly by the tests with arrays of different lengths.
func arraySum[T dtypes.Float](a, b []T) {
	n := min(len(a), len(b))
	a, b = a[:n], b[:n]
	for i := range a {
		a[i] += b[i]
	}
}
