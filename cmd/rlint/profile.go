package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rlint/internal/prof"
)

// setupProfiling reads the persistent profiling flags and starts the
// requested profilers. The returned cleanup is idempotent, so callers can
// both defer it and invoke it explicitly before os.Exit.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()

	cpuProfile, err := flags.GetString("cpu-profile")
	if err != nil {
		return nil, err
	}
	memProfile, err := flags.GetString("mem-profile")
	if err != nil {
		return nil, err
	}
	tracePath, err := flags.GetString("runtime-trace")
	if err != nil {
		return nil, err
	}

	stopCPU := func() {}
	stopTrace := func() {}
	writeHeap := func() {}

	if cpuProfile != "" {
		if err := prof.StartCPU(cpuProfile); err != nil {
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		stopCPU = prof.StopCPU
	}
	if tracePath != "" {
		if err := prof.StartTrace(tracePath); err != nil {
			stopCPU()
			return nil, fmt.Errorf("failed to start runtime trace: %w", err)
		}
		stopTrace = prof.StopTrace
	}
	if memProfile != "" {
		writeHeap = func() {
			if err := prof.WriteHeap(memProfile); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write heap profile: %v\n", err)
			}
		}
	}

	cleaned := false
	cleanup := func() {
		if cleaned {
			return
		}
		cleaned = true
		stopTrace()
		stopCPU()
		writeHeap()
	}
	return cleanup, nil
}
