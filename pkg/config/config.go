// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package config defines the immutable configuration of one benchmark run.
//
// A Config is built once, typically from Go constants in a cmd/ binary, and passed by value
// to every component: kernels, the trial runner and the reporter.
package config

import (
	"fmt"

	"github.com/gomlx/membench/pkg/core/dtypes"
	"github.com/pkg/errors"
)

// KernelKind enumerates the benchmark kernels.
type KernelKind int

const (
	// BlockedTranspose is a cache tiled transpose of an N×N matrix.
	BlockedTranspose KernelKind = iota

	// NaiveMatMul is the triple loop C = A × B, no blocking.
	NaiveMatMul

	// ArraySum accumulates one array into another, a[i] += b[i].
	ArraySum
)

// String returns the kernel name, as printed in the reports.
func (k KernelKind) String() string {
	switch k {
	case BlockedTranspose:
		return "transposed_blocked"
	case NaiveMatMul:
		return "mat_mult_naive"
	case ArraySum:
		return "array_sum"
	default:
		return fmt.Sprintf("KernelKind(%d)", int(k))
	}
}

// Policy selects how strictly configuration problems that still allow a run are handled.
type Policy int

const (
	// Strict fails with ErrInvalidConfiguration on any problem. It is the default.
	Strict Policy = iota

	// Permissive downgrades recoverable problems to warnings: a transpose whose order is not a
	// multiple of the blocking factor transposes only the divisible prefix.
	Permissive
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Permissive:
		return "permissive"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB

	// DefaultEvictionBytes is the size of the buffer used to evict the caches: it should be at
	// least as large as the largest cache of the target hardware.
	DefaultEvictionBytes = 16 * MiB
)

// Config of one benchmark run.
type Config struct {
	Kernel KernelKind
	DType  dtypes.DType

	// Trials is the number of timed invocations of the kernel. The first one is discarded,
	// so it must be at least 2.
	Trials int

	// MatrixN is the order of the transposed matrix, or the number of columns of B and C in the
	// matrix multiplication.
	MatrixN int

	// MatrixM and MatrixK are the rows of A and the inner dimension of the matrix multiplication.
	MatrixM, MatrixK int

	// BlockFactor is the side of the transpose tiles.
	BlockFactor int

	// ArrayLength is the length of the accumulated array a.
	ArrayLength int

	// SecondArrayLength is the length of the array b. If 0, it is the same as ArrayLength.
	SecondArrayLength int

	// EvictionBytes is the size of the cache eviction buffer. If 0, DefaultEvictionBytes is used.
	EvictionBytes int

	// HotCache disables the cache eviction before each trial.
	HotCache bool

	Policy Policy
}

// DefaultTranspose returns the configuration of the blocked transpose benchmark.
//
// The blocking factor avoids powers of 2, which hit corner cases of the cache associativity.
func DefaultTranspose() Config {
	return Config{
		Kernel:      BlockedTranspose,
		DType:       dtypes.Float64,
		Trials:      10,
		MatrixN:     5000,
		BlockFactor: 250,
	}
}

// DefaultMatMul returns the configuration of the naive matrix multiplication benchmark.
func DefaultMatMul() Config {
	return Config{
		Kernel:  NaiveMatMul,
		DType:   dtypes.Float64,
		Trials:  10,
		MatrixM: 800,
		MatrixK: 800,
		MatrixN: 800,
	}
}

// DefaultArraySum returns the configuration of the array accumulation benchmark.
func DefaultArraySum() Config {
	return Config{
		Kernel:      ArraySum,
		DType:       dtypes.Float32,
		Trials:      1000,
		ArrayLength: 400000,
	}
}

// SecondLength returns the length of the array b of the ArraySum kernel.
func (c Config) SecondLength() int {
	if c.SecondArrayLength == 0 {
		return c.ArrayLength
	}
	return c.SecondArrayLength
}

// EvictionSize returns the size of the eviction buffer, or 0 if HotCache is set.
func (c Config) EvictionSize() int {
	if c.HotCache {
		return 0
	}
	if c.EvictionBytes == 0 {
		return DefaultEvictionBytes
	}
	return c.EvictionBytes
}

// Divisible reports whether the transpose order is a multiple of the blocking factor.
func (c Config) Divisible() bool {
	return c.BlockFactor > 0 && c.MatrixN%c.BlockFactor == 0
}

// DivisibilityWarning is the message reported when the transpose order is not a multiple of
// the blocking factor.
func (c Config) DivisibilityWarning() string {
	return fmt.Sprintf("MATRIX_N (%d) must be a multiple of BLK_FACTOR (%d)", c.MatrixN, c.BlockFactor)
}

// Validate checks the configuration.
//
// It returns the warnings that should be reported along with the results, and an error
// wrapping ErrInvalidConfiguration if the run can't proceed. What counts as a warning or an
// error depends on the Policy.
func (c Config) Validate() (warnings []string, err error) {
	if c.Trials < 2 {
		return nil, invalidf("%s: # of trials must be >= 2 so one survives the warm-up discard, got %d",
			c.Kernel, c.Trials)
	}
	if !c.DType.IsValid() {
		return nil, invalidf("%s: invalid dtype %s", c.Kernel, c.DType)
	}
	if c.EvictionBytes < 0 {
		return nil, invalidf("%s: eviction buffer size must be >= 0, got %d", c.Kernel, c.EvictionBytes)
	}
	switch c.Kernel {
	case BlockedTranspose:
		if c.MatrixN <= 0 || c.BlockFactor <= 0 {
			return nil, invalidf("%s: matrix order (%d) and blocking factor (%d) must be positive",
				c.Kernel, c.MatrixN, c.BlockFactor)
		}
		if c.BlockFactor > c.MatrixN {
			return nil, invalidf("%s: blocking factor (%d) must not be larger than the matrix order (%d)",
				c.Kernel, c.BlockFactor, c.MatrixN)
		}
		if !c.Divisible() {
			if c.Policy != Permissive {
				return nil, invalidf("%s: %s", c.Kernel, c.DivisibilityWarning())
			}
			warnings = append(warnings, c.DivisibilityWarning())
		}
	case NaiveMatMul:
		if c.MatrixM <= 0 || c.MatrixK <= 0 || c.MatrixN <= 0 {
			return nil, invalidf("%s: matrix dimensions M=%d, K=%d, N=%d must be positive",
				c.Kernel, c.MatrixM, c.MatrixK, c.MatrixN)
		}
		if !c.DType.IsArithmetic() {
			return nil, invalidf("%s: dtype %s not supported, only Float32 and Float64", c.Kernel, c.DType)
		}
	case ArraySum:
		if c.ArrayLength <= 0 || c.SecondArrayLength < 0 {
			return nil, invalidf("%s: array lengths (%d, %d) must be positive",
				c.Kernel, c.ArrayLength, c.SecondArrayLength)
		}
		if !c.DType.IsArithmetic() {
			return nil, invalidf("%s: dtype %s not supported, only Float32 and Float64", c.Kernel, c.DType)
		}
	default:
		return nil, invalidf("unknown kernel %s", c.Kernel)
	}
	return warnings, nil
}

// WorkingSetBytes returns the number of bytes allocated for the kernel buffers.
// It doesn't include the eviction buffer, see EvictionSize.
func (c Config) WorkingSetBytes() int64 {
	size := int64(c.DType.Size())
	switch c.Kernel {
	case BlockedTranspose:
		n := int64(c.MatrixN)
		return 2 * n * n * size
	case NaiveMatMul:
		m, k, n := int64(c.MatrixM), int64(c.MatrixK), int64(c.MatrixN)
		return (m*k + k*n + m*n) * size
	case ArraySum:
		return int64(c.ArrayLength+c.SecondLength()) * size
	}
	return 0
}

// CheckMemory fails with ErrOutOfMemory if the kernel buffers plus the eviction buffer
// don't fit in limit bytes. A limit of 0 means unknown, and it always succeeds.
func (c Config) CheckMemory(limit uint64) error {
	if limit == 0 {
		return nil
	}
	required := uint64(c.WorkingSetBytes()) + uint64(c.EvictionSize())
	if required > limit {
		return errors.Wrapf(ErrOutOfMemory, "%s requires %d bytes, only %d available", c.Kernel, required, limit)
	}
	return nil
}
