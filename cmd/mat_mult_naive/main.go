// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// mat_mult_naive measures the floating point rate and memory bandwidth of the naive
// triple loop matrix multiplication C(M x N) = A(M x K) x B(K x N).
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
	MatrixM   = 800
	MatrixK   = 800
	MatrixN   = 800
	NumTrials = 10
	DType     = dtypes.Float64
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	cfg := config.DefaultMatMul()
	cfg.MatrixM, cfg.MatrixK, cfg.MatrixN = MatrixM, MatrixK, MatrixN
	cfg.Trials = NumTrials
	cfg.DType = DType

	klog.V(1).Infof("host: %s", bench.HostDescription())
	w := bufio.NewWriter(os.Stdout)
	_, err := bench.Run(cfg, w, bench.Options{})
	must.M(w.Flush())
	if err != nil {
		klog.Errorf("mat_mult_naive failed: %+v", err)
		os.Exit(1)
	}
}
