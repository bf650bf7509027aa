// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/membench/pkg/cache"
	"github.com/pbnjay/memory"
	"golang.org/x/sys/cpu"
)

// CPUFeatures returns the SIMD extensions of the host relevant to the kernels, as detected by
// golang.org/x/sys/cpu. The Go compiler doesn't auto-vectorize, but it tells apart hosts when
// comparing reports.
func CPUFeatures() []string {
	var features []string
	add := func(has bool, name string) {
		if has {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE41 || cpu.X86.HasSSE42, "SSE4")
		add(cpu.X86.HasAVX, "AVX")
		add(cpu.X86.HasAVX2, "AVX2")
		add(cpu.X86.HasFMA, "FMA")
		add(cpu.X86.HasAVX512F, "AVX512F")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "NEON")
		add(cpu.ARM64.HasFPHP, "FP16")
		add(cpu.ARM64.HasSVE, "SVE")
	}
	return features
}

// HostDescription returns a one line description of the host.
func HostDescription() string {
	features := "none"
	if f := CPUFeatures(); len(f) > 0 {
		features = strings.Join(f, ", ")
	}
	total := "unknown"
	if m := memory.TotalMemory(); m > 0 {
		total = humanize.IBytes(m)
	}
	return fmt.Sprintf("%s/%s, %d CPUs, %s memory, %d bytes cache line, CPU features: %s",
		runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), total, cache.LineSize, features)
}
