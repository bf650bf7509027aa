// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package cache implements the eviction of the processor caches before each timed trial.
//
// It's a best-effort heuristic: touching a buffer larger than the largest cache makes it,
// and not the working set of the previous trial, dominate the cache occupancy. No privileged
// instruction is used, and no specific cache level is flushed.
package cache

import (
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/membench/pkg/config"
	"github.com/pkg/errors"
	"golang.org/x/sys/cpu"
	"k8s.io/klog/v2"
)

// LineSize is the size of the cache line of the platform, as known by golang.org/x/sys/cpu.
var LineSize = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// Evictor owns the buffer used to evict the caches.
type Evictor struct {
	buf    []byte
	passes int
}

// New creates an Evictor with a buffer of at least size bytes, rounded up to a multiple of
// the cache line. If size is 0, config.DefaultEvictionBytes is used.
func New(size int) (*Evictor, error) {
	if size < 0 {
		return nil, errors.Wrapf(config.ErrInvalidConfiguration, "eviction buffer size must be >= 0, got %d", size)
	}
	if size == 0 {
		size = config.DefaultEvictionBytes
	}
	if LineSize > 0 {
		size = (size + LineSize - 1) / LineSize * LineSize
	}
	var buf []byte
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Wrapf(config.ErrOutOfMemory, "allocating %d bytes eviction buffer: %v", size, r)
			}
		}()
		buf = make([]byte, size)
		return nil
	}()
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("cache evictor: %s buffer, %d bytes cache line", humanize.IBytes(uint64(size)), LineSize)
	return &Evictor{buf: buf}, nil
}

// Size of the eviction buffer in bytes.
func (e *Evictor) Size() int {
	return len(e.buf)
}

// Passes returns how many times Evict was called.
func (e *Evictor) Passes() int {
	return e.passes
}

// Evict does a read-modify-write pass over every byte of the buffer.
func (e *Evictor) Evict() {
	buf := e.buf
	for i := range buf {
		buf[i]++
	}
	e.passes++
	if klog.V(2).Enabled() {
		klog.Infof("cache evictor: pass #%d over %s", e.passes, humanize.IBytes(uint64(len(buf))))
	}
}
