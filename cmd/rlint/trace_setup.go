package main

import (
	"github.com/spf13/cobra"

	"rlint/internal/trace"
)

// setupTracing builds a tracer from the persistent --trace flags. With no
// --trace flag it returns the nop tracer; the cleanup is idempotent.
func setupTracing(cmd *cobra.Command) (trace.Tracer, func(), error) {
	flags := cmd.Root().PersistentFlags()

	output, err := flags.GetString("trace")
	if err != nil {
		return nil, nil, err
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, nil, err
	}

	if output == "" {
		return trace.Nop, func() {}, nil
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, err
	}

	tracer, err := trace.New(trace.Config{Level: level, OutputPath: output})
	if err != nil {
		return nil, nil, err
	}

	cleaned := false
	cleanup := func() {
		if cleaned {
			return
		}
		cleaned = true
		_ = tracer.Close()
	}
	return tracer, cleanup, nil
}
