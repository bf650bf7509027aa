// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package kernels

import (
	"fmt"
	"testing"

	"github.com/gomlx/membench/pkg/config"
)

func reportRates(b *testing.B, acc Accounting) {
	seconds := b.Elapsed().Seconds() / float64(b.N)
	if seconds <= 0 {
		return
	}
	b.ReportMetric(acc.Bytes/seconds/config.GiB, "GB/s")
	if acc.HasFlops() {
		b.ReportMetric(acc.Flops/seconds/config.MiB, "MFLOPS")
	}
}

func BenchmarkBlockedTranspose(b *testing.B) {
	for _, block := range []int{10, 50, 250, 1000} {
		b.Run(fmt.Sprintf("1000x1000/block=%d", block), func(b *testing.B) {
			k, err := NewBlockedTranspose[float64](1000, block, config.Strict)
			if err != nil {
				b.Fatalf("NewBlockedTranspose failed: %v", err)
			}
			b.ResetTimer()
			for range b.N {
				k.Run()
			}
			reportRates(b, k.Accounting())
		})
	}
}

func BenchmarkNaiveMatMul(b *testing.B) {
	for _, size := range []int{64, 128, 256} {
		b.Run(fmt.Sprintf("%dx%dx%d", size, size, size), func(b *testing.B) {
			k, err := NewNaiveMatMul[float64](size, size, size)
			if err != nil {
				b.Fatalf("NewNaiveMatMul failed: %v", err)
			}
			b.ResetTimer()
			for range b.N {
				k.Run()
			}
			reportRates(b, k.Accounting())
		})
	}
}

func BenchmarkArraySum(b *testing.B) {
	for _, length := range []int{4000, 400000} {
		b.Run(fmt.Sprintf("len=%d", length), func(b *testing.B) {
			k, err := NewArraySum[float32](length, length)
			if err != nil {
				b.Fatalf("NewArraySum failed: %v", err)
			}
			b.ResetTimer()
			for range b.N {
				k.Run()
			}
			reportRates(b, k.Accounting())
		})
	}
}
