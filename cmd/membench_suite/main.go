// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// membench_suite runs the default configuration of every kernel in sequence, with a
// progress bar on stderr, and prints each report followed by a summary table.
//
// The only flags are klog's logging flags.
//
// It exits with status 1, after logging the error, if the configuration is invalid or the
// buffers can't be allocated. Self-check mismatches are reported and don't change the exit status.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/gomlx/membench/pkg/bench"
	"github.com/gomlx/membench/pkg/config"
	"github.com/gomlx/membench/pkg/trials"
	"github.com/gomlx/membench/ui/commandline"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	klog.Infof("host: %s", bench.HostDescription())

	configs := []config.Config{
		config.DefaultTranspose(),
		config.DefaultMatMul(),
		config.DefaultArraySum(),
	}
	w := bufio.NewWriter(os.Stdout)
	var summaries []*bench.Summary
	for ii, cfg := range configs {
		if ii > 0 {
			must.M1(fmt.Fprintln(w))
		}
		progress := commandline.NewTrialProgress(os.Stderr, cfg.Kernel.String(), cfg.Trials)
		summary, err := bench.Run(cfg, w, bench.Options{Observers: []trials.Observer{progress.Observe}})
		progress.Finish()
		must.M(w.Flush())
		if err != nil {
			klog.Errorf("%s failed: %+v", cfg.Kernel, err)
			os.Exit(1)
		}
		summaries = append(summaries, summary)
	}
	must.M1(fmt.Fprintln(w, commandline.SummaryTable(summaries)))
	must.M(w.Flush())
}
