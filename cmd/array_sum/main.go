// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// array_sum measures the floating point rate and memory bandwidth of the element-wise
// sum of two arrays, a[i] += b[i].
//
// Sizes are fixed at build time. The only flags are klog's logging flags.
//
// It exits with status 1, after logging the error, if the configuration is invalid or the
// buffers can't be allocated. Self-check mismatches are reported and don't change the exit status.
package main

import (
	"bufio"
	"flag"
	"os"

	"github.com/gomlx/membench/pkg/bench"
	"github.com/gomlx/membench/pkg/config"
	"github.com/gomlx/membench/pkg/core/dtypes"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

const (
	ArrayLength = 400000
	NumTrials   = 1000
	DType       = dtypes.Float32

	// HotCache disables the cache eviction between trials.
	HotCache = false
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	cfg := config.DefaultArraySum()
	cfg.ArrayLength = ArrayLength
	cfg.Trials = NumTrials
	cfg.DType = DType
	cfg.HotCache = HotCache

	klog.V(1).Infof("host: %s", bench.HostDescription())
	w := bufio.NewWriter(os.Stdout)
	_, err := bench.Run(cfg, w, bench.Options{})
	must.M(w.Flush())
	if err != nil {
		klog.Errorf("array_sum failed: %+v", err)
		os.Exit(1)
	}
}
