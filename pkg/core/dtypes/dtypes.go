// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package dtypes includes the DType enum for the element types the benchmark kernels can be built with.
//
// It is a trimmed down version of GoMLX's dtypes: only floating-point types are supported, since
// every kernel either moves or accumulates floating-point values. It includes converters from
// Go native types, and constraint interfaces to be used with generics (Supported, Float).
package dtypes

import (
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// panicf panics with the formatted description.
//
// It is only used for "bugs in the code" -- when parameters don't follow the documented contract.
func panicf(format string, args ...any) {
	panic(errors.Errorf(format, args...))
}

// DType is an enum with the element data type of the kernel buffers.
type DType int32

const (
	// InvalidDType is the zero value, and it's never accepted by a kernel.
	InvalidDType DType = iota

	// Float16 is IEEE 754 half precision, implemented by github.com/x448/float16.
	// It can only be used by kernels that don't do arithmetic (the transpose).
	Float16

	// Float32 is IEEE 754 single precision, the C "float".
	Float32

	// Float64 is IEEE 754 double precision, the C "double".
	Float64
)

// Supported lists the Go types that can be used as kernel elements.
type Supported interface {
	float16.Float16 | float32 | float64
}

// Float lists the Go types the arithmetic kernels can be instantiated with.
type Float interface {
	float32 | float64
}

// FromGenericsType returns the DType enum for the given type.
func FromGenericsType[T Supported]() DType {
	var t T
	switch (any(t)).(type) {
	case float64:
		return Float64
	case float32:
		return Float32
	case float16.Float16:
		return Float16
	}
	return InvalidDType
}

// FromFloat64 converts a float64 to the element type T, rounding to the nearest representable value.
func FromFloat64[T Supported](value float64) T {
	var t T
	switch p := any(&t).(type) {
	case *float64:
		*p = value
	case *float32:
		*p = float32(value)
	case *float16.Float16:
		*p = float16.Fromfloat32(float32(value))
	}
	return t
}

// IsValid returns whether dtype is one of the supported values.
func (dtype DType) IsValid() bool {
	return dtype >= Float16 && dtype <= Float64
}

// Size returns the number of bytes of one element of the given DType.
func (dtype DType) Size() int {
	switch dtype {
	case Float16:
		return 2
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panicf("unknown dtype %d in DType.Size", int32(dtype))
		panic(nil)
	}
}

// MaxExactInteger returns the largest m such that every integer in [0, m] is exactly
// representable by dtype: 2^11 for Float16, 2^24 for Float32 and 2^53 for Float64.
func (dtype DType) MaxExactInteger() int64 {
	switch dtype {
	case Float16:
		return 1 << 11
	case Float32:
		return 1 << 24
	case Float64:
		return 1 << 53
	default:
		panicf("unknown dtype %d in DType.MaxExactInteger", int32(dtype))
		panic(nil)
	}
}

// IsArithmetic returns whether kernels that add and multiply elements can be built for dtype.
//
// Float16 has no native Go arithmetic, every operation would be a software conversion, and
// the measurement would be of the conversion, not of the memory subsystem.
func (dtype DType) IsArithmetic() bool {
	return dtype == Float32 || dtype == Float64
}

// String implements fmt.Stringer.
func (dtype DType) String() string {
	switch dtype {
	case Float16:
		return "Float16"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	default:
		return "InvalidDType"
	}
}

// CName returns the name of the equivalent C type, as printed in the benchmark reports.
func (dtype DType) CName() string {
	switch dtype {
	case Float16:
		return "half"
	case Float32:
		return "float"
	case Float64:
		return "double"
	default:
		return "invalid"
	}
}
