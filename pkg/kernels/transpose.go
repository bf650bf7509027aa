// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package kernels

import (
	"github.com/gomlx/membench/pkg/config"
	"github.com/gomlx/membench/pkg/core/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// BlockedTranspose computes dst[j][i] = src[i][j] for a row-major N×N matrix, iterating over
// tiles of B×B elements to improve the cache locality of the strided writes.
//
// If N is not a multiple of B (only accepted with config.Permissive) only the divisible prefix
// [0, N-N%B)×[0, N-N%B) is transposed: the remaining destination cells are never written.
type BlockedTranspose[T dtypes.Supported] struct {
	n, block int

	// covered is the side of the square actually transposed.
	covered  int
	src, dst []T
}

var _ SelfChecker = (*BlockedTranspose[float64])(nil)

// NewBlockedTranspose creates a transpose kernel of an n×n matrix with tiles of side block.
//
// If n is not a multiple of block it fails with config.ErrInvalidConfiguration, unless
// policy is config.Permissive.
func NewBlockedTranspose[T dtypes.Supported](n, block int, policy config.Policy) (*BlockedTranspose[T], error) {
	if n <= 0 || block <= 0 || block > n {
		return nil, errors.Wrapf(config.ErrInvalidConfiguration,
			"transpose requires 0 < block (%d) <= n (%d)", block, n)
	}
	remainder := n % block
	if remainder != 0 && policy != config.Permissive {
		return nil, errors.Wrapf(config.ErrInvalidConfiguration,
			"transpose order %d is not a multiple of the blocking factor %d", n, block)
	}
	k := &BlockedTranspose[T]{n: n, block: block, covered: n - remainder}
	var err error
	if k.src, err = allocate[T](n * n); err != nil {
		return nil, err
	}
	if k.dst, err = allocate[T](n * n); err != nil {
		return nil, err
	}
	k.fillSource()
	return k, nil
}

// Name implements Kernel.
func (k *BlockedTranspose[T]) Name() string {
	return config.BlockedTranspose.String()
}

// Covered returns the side of the prefix square that is transposed. It is equal to
// N, unless N is not a multiple of the blocking factor.
func (k *BlockedTranspose[T]) Covered() int { return k.covered }

// Source returns the row-major source matrix. It is owned by the kernel.
func (k *BlockedTranspose[T]) Source() []T { return k.src }

// Destination returns the row-major transposed matrix. It is owned by the kernel.
func (k *BlockedTranspose[T]) Destination() []T { return k.dst }

// Accounting implements Kernel: one read and one write of every transposed element.
func (k *BlockedTranspose[T]) Accounting() Accounting {
	covered := float64(k.covered)
	return Accounting{Bytes: 2 * covered * covered * elementSize[T]()}
}

// Run implements Kernel.
func (k *BlockedTranspose[T]) Run() {
	n, block, limit := k.n, k.block, k.covered
	src, dst := k.src, k.dst
	for ik := 0; ik < limit; ik += block {
		for jk := 0; jk < limit; jk += block {
			for i := ik; i < ik+block; i++ {
				row := src[i*n+jk : i*n+jk+block]
				for jj, value := range row {
					dst[(jk+jj)*n+i] = value
				}
			}
		}
	}
}

// fillSource sets src[i][j] = i*N + j.
func (k *BlockedTranspose[T]) fillSource() {
	n := k.n
	for i := range n {
		row := k.src[i*n : (i+1)*n]
		for j := range row {
			row[j] = dtypes.FromFloat64[T](float64(i*n + j))
		}
	}
}

// PatternIsExact returns whether every value of the self-check pattern i*N+j is exactly
// representable by T. If not, distinct cells share values and a misplaced cell may go
// undetected: with Float16 this happens for N > 45.
func (k *BlockedTranspose[T]) PatternIsExact() bool {
	n := int64(k.n)
	return n*n-1 <= dtypes.FromGenericsType[T]().MaxExactInteger()
}

// SelfCheck implements SelfChecker.
//
// It sets src[i][j] = i*N+j, zeroes the destination, runs the kernel once and reports
// every cell where src[i][j] != dst[j][i]. The result only depends on the kernel configuration,
// so calling it repeatedly gives the same mismatches.
func (k *BlockedTranspose[T]) SelfCheck(onMismatch func(Mismatch)) int {
	if !k.PatternIsExact() {
		klog.Warningf("%s: %s can't represent every value of the %dx%d self-check pattern, "+
			"misplaced cells with equal values won't be detected", k.Name(), dtypes.FromGenericsType[T](), k.n, k.n)
	}
	k.fillSource()
	clear(k.dst)
	k.Run()

	n := k.n
	var count int
	for i := range n {
		for j := range n {
			if k.src[i*n+j] != k.dst[j*n+i] {
				count++
				if onMismatch != nil {
					onMismatch(Mismatch{Row: i, Col: j})
				}
			}
		}
	}
	return count
}
