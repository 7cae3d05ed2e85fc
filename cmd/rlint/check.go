package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rlint/internal/diag"
	"rlint/internal/diagfmt"
	"rlint/internal/driver"
	"rlint/internal/source"
	"rlint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [paths...]",
	Short: "Check R files for lint findings",
	Long: `Check parses every R file under the given paths (default: the current
directory), runs the enabled rules, and reports the findings. Nothing is
modified; use "rlint fix" to apply fixes.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	checkCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := readPersistentOpts(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiMode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	paths := defaultPaths(args)
	manifest, err := discoverManifest(paths)
	if err != nil {
		return err
	}

	tracer, stopTracing, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer stopTracing()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	opts.driver.Tracer = tracer
	session := driver.NewSession(manifest, opts.driver)

	// The TUI owns stdout while running, so it is mutually exclusive with
	// machine-readable formats.
	useTUI := format == "pretty" && !opts.quiet && shouldUseTUI(uiMode)

	fileSet, results, err := runCheckBatch(cmd, session, paths, useTUI)
	if err != nil {
		return err
	}

	merged := diag.NewBag(len(results) * opts.driver.MaxDiagnostics)
	for _, res := range results {
		merged.Merge(res.Bag)
	}
	merged.Sort()

	switch format {
	case "pretty":
		if !opts.quiet {
			diagfmt.Pretty(os.Stdout, merged, fileSet, diagfmt.PrettyOpts{
				Color:     opts.color,
				PathMode:  diagfmt.PathModeRelative,
				ShowNotes: true,
				ShowFixes: true,
			})
			printCheckSummary(results, merged)
		}
	case "json":
		if err := diagfmt.JSON(os.Stdout, merged, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}); err != nil {
			return err
		}
	case "sarif":
		if err := diagfmt.Sarif(os.Stdout, merged, fileSet, diagfmt.SarifRunMeta{
			ToolName:    "rlint",
			ToolVersion: version.Plain,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if opts.timings {
		printTimings(os.Stderr, results)
	}

	// os.Exit skips deferred cleanup, so run it by hand first.
	switch {
	case merged.HasErrors():
		stopProfiling()
		stopTracing()
		os.Exit(exitError)
	case merged.HasLint():
		stopProfiling()
		stopTracing()
		os.Exit(exitFindings)
	}
	return nil
}

func runCheckBatch(cmd *cobra.Command, session *driver.Session, paths []string, useTUI bool) (*source.FileSet, []driver.FileResult, error) {
	if !useTUI {
		return session.CheckPaths(cmd.Context(), paths)
	}
	return runCheckWithUI(cmd.Context(), session, paths)
}

func printCheckSummary(results []driver.FileResult, merged *diag.Bag) {
	findings := 0
	for _, d := range merged.Items() {
		if d.Code.IsLint() {
			findings++
		}
	}
	fixable := 0
	for _, d := range merged.Items() {
		if d.HasFix() {
			fixable++
		}
	}
	fmt.Printf("%d files checked, %d findings (%d fixable)\n", len(results), findings, fixable)
}

func printTimings(w *os.File, results []driver.FileResult) {
	for _, res := range results {
		if res.Timing == nil {
			continue
		}
		fmt.Fprintf(w, "%s: %.2f ms\n", res.Path, res.Timing.TotalMS)
		for _, phase := range res.Timing.Phases {
			fmt.Fprintf(w, "  %-10s %7.2f ms  %s\n", phase.Name, phase.DurationMS, phase.Note)
		}
	}
}
