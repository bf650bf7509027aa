// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package config

import "github.com/pkg/errors"

var (
	// ErrInvalidConfiguration is wrapped by every configuration problem that prevents a run.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrOutOfMemory is wrapped when the kernel buffers can't be allocated.
	// It is always returned before any trial is timed.
	ErrOutOfMemory = errors.New("out of memory")
)

// invalidf wraps ErrInvalidConfiguration with the formatted description.
func invalidf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidConfiguration, format, args...)
}
