// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package kernels implements the numeric kernels measured by the benchmark harness.
//
// Each kernel owns its buffers: they are allocated and initialized once, when the kernel is
// created, and mutated in place by every call to Run. Kernels are not safe for concurrent use.
package kernels

import (
	"github.com/gomlx/membench/pkg/config"
	"github.com/gomlx/membench/pkg/core/dtypes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Kernel is a numeric kernel that can be timed.
type Kernel interface {
	// Name of the kernel, as printed in the reports.
	Name() string

	// Run executes the kernel once over its buffers.
	Run()

	// Accounting returns the bytes moved and floating-point operations performed by one Run.
	Accounting() Accounting
}

// Accounting of the work of one kernel invocation. It is fixed at creation time.
type Accounting struct {
	// Bytes read plus bytes written.
	Bytes float64

	// Flops is the number of floating-point operations, or 0 if the kernel does none.
	Flops float64
}

// HasFlops returns whether the kernel performs floating-point operations.
func (a Accounting) HasFlops() bool {
	return a.Flops > 0
}

// Mismatch is a destination cell that doesn't hold the expected value after a self-check.
type Mismatch struct {
	Row, Col int
}

// SelfChecker is implemented by kernels that can validate their output before being timed.
type SelfChecker interface {
	// SelfCheck initializes the kernel buffers with a closed-form pattern, runs the kernel once
	// and calls onMismatch for every incorrect cell. It returns the number of mismatches.
	SelfCheck(onMismatch func(Mismatch)) int
}

// New creates the kernel described by cfg, with its buffers allocated and initialized.
//
// It returns an error wrapping config.ErrInvalidConfiguration if cfg is not valid, or
// config.ErrOutOfMemory if the buffers can't be allocated.
func New(cfg config.Config) (Kernel, error) {
	if _, err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kernel {
	case config.BlockedTranspose:
		switch cfg.DType {
		case dtypes.Float64:
			return asKernel(NewBlockedTranspose[float64](cfg.MatrixN, cfg.BlockFactor, cfg.Policy))
		case dtypes.Float32:
			return asKernel(NewBlockedTranspose[float32](cfg.MatrixN, cfg.BlockFactor, cfg.Policy))
		case dtypes.Float16:
			return asKernel(NewBlockedTranspose[float16.Float16](cfg.MatrixN, cfg.BlockFactor, cfg.Policy))
		}
	case config.NaiveMatMul:
		switch cfg.DType {
		case dtypes.Float64:
			return asKernel(NewNaiveMatMul[float64](cfg.MatrixM, cfg.MatrixK, cfg.MatrixN))
		case dtypes.Float32:
			return asKernel(NewNaiveMatMul[float32](cfg.MatrixM, cfg.MatrixK, cfg.MatrixN))
		}
	case config.ArraySum:
		switch cfg.DType {
		case dtypes.Float64:
			return asKernel(NewArraySum[float64](cfg.ArrayLength, cfg.SecondLength()))
		case dtypes.Float32:
			return asKernel(NewArraySum[float32](cfg.ArrayLength, cfg.SecondLength()))
		}
	}
	// Validate should have caught it.
	panicf("no kernel %s for dtype %s", cfg.Kernel, cfg.DType)
	return nil, nil
}

// asKernel converts the result of a typed constructor, so a failed construction returns a nil Kernel.
func asKernel(k Kernel, err error) (Kernel, error) {
	if err != nil {
		return nil, err
	}
	return k, nil
}

// panicf panics with the formatted description.
//
// It is only used for "bugs in the code" -- when parameters don't follow the documented contract.
func panicf(format string, args ...any) {
	panic(errors.Errorf(format, args...))
}

// allocate a zeroed buffer of n elements, converting allocation failures into
// config.ErrOutOfMemory.
func allocate[T dtypes.Supported](n int) (buf []T, err error) {
	if n < 0 {
		return nil, errors.Wrapf(config.ErrInvalidConfiguration, "negative buffer length %d", n)
	}
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = errors.Wrapf(config.ErrOutOfMemory, "allocating %d elements of %s: %v",
				n, dtypes.FromGenericsType[T](), r)
		}
	}()
	buf = make([]T, n)
	return buf, nil
}

// elementSize returns the size in bytes of T.
func elementSize[T dtypes.Supported]() float64 {
	return float64(dtypes.FromGenericsType[T]().Size())
}
