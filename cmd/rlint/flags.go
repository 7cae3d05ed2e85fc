package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rlint/internal/driver"
	"rlint/internal/project"
	"rlint/internal/rules"
)

// persistentOpts collects the root-level flags every subcommand consumes.
type persistentOpts struct {
	color   bool
	quiet   bool
	timings bool
	driver  driver.Options
}

func readPersistentOpts(cmd *cobra.Command) (persistentOpts, error) {
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return persistentOpts{}, err
	}
	var useColor bool
	switch strings.ToLower(colorFlag) {
	case "on":
		useColor = true
	case "off":
		useColor = false
	case "auto", "":
		useColor = isTerminal(os.Stdout)
	default:
		return persistentOpts{}, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return persistentOpts{}, err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return persistentOpts{}, err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return persistentOpts{}, err
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return persistentOpts{}, err
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return persistentOpts{}, err
	}

	return persistentOpts{
		color:   useColor,
		quiet:   quiet,
		timings: timings,
		driver: driver.Options{
			MaxDiagnostics: maxDiagnostics,
			Jobs:           jobs,
			Timings:        timings,
			NoCache:        noCache,
		},
	}, nil
}

// discoverManifest locates the project config starting from the first
// argument's directory, falling back to the working directory.
func discoverManifest(paths []string) (project.Manifest, error) {
	start := "."
	if len(paths) > 0 {
		start = paths[0]
		if info, err := os.Stat(start); err == nil && !info.IsDir() {
			start = filepath.Dir(start)
		}
	}
	return project.Discover(start, rules.Names())
}

func defaultPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
