// Package trace records the lifecycle of a lint run as a stream of span
// events: the batch, each file inside it, and each pipeline phase inside a
// file. The output is meant for debugging slow runs, not for end users;
// enable it with the --trace flag.
package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives span events. Implementations must be goroutine-safe: the
// batch driver emits from worker goroutines.
type Tracer interface {
	Emit(ev *Event)

	// Flush forces buffered events out.
	Flush() error

	// Close flushes and releases the output.
	Close() error

	Level() Level

	// Enabled reports whether emitting is worth the Event allocation.
	Enabled() bool
}

// Config describes where and how verbosely to trace.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "-" or empty means stderr
}

// New builds a tracer from cfg. A LevelOff config yields the nop tracer, so
// callers never need to special-case disabled tracing.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}

	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
