package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rlint/internal/diagfmt"
	"rlint/internal/driver"
	"rlint/internal/vcs"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [paths...]",
	Short: "Apply fixes to R files in place",
	Long: `Fix runs the checker, applies the safe fixes, and re-checks until no
more apply. Files are rewritten in place, so fix refuses to run outside a
version-controlled tree unless --allow-no-vcs is set.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("unsafe", false, "also apply fixes that may change behavior")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing")
	fixCmd.Flags().Bool("allow-no-vcs", false, "fix files outside version control")
	fixCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
}

func runFix(cmd *cobra.Command, args []string) error {
	opts, err := readPersistentOpts(cmd)
	if err != nil {
		return err
	}
	unsafeFixes, err := cmd.Flags().GetBool("unsafe")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	allowNoVCS, err := cmd.Flags().GetBool("allow-no-vcs")
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
	unsafeFixes = unsafeFixes || manifest.Config.Lint.UnsafeFixes

	if !dryRun && !allowNoVCS {
		inVCS, err := vcs.InWorktree(manifest.Root)
		if err != nil {
			return err
		}
		if !inVCS {
			return fmt.Errorf("%s is not under version control; commit first or pass --allow-no-vcs", manifest.Root)
		}
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

	// Fixing always reruns the pipeline on rewritten text; cached results
	// would be stale after the first pass anyway.
	opts.driver.NoCache = true
	opts.driver.Tracer = tracer
	session := driver.NewSession(manifest, opts.driver)

	useTUI := !opts.quiet && shouldUseTUI(uiMode)
	outcomes, err := runFixBatch(cmd, session, paths, unsafeFixes, dryRun, useTUI)
	if err != nil {
		return err
	}

	hadErrors := false
	remaining := false
	totalApplied := 0
	changedFiles := 0
	for _, outcome := range outcomes {
		totalApplied += outcome.Applied
		if outcome.Changed {
			changedFiles++
		}
		if outcome.Bag == nil {
			continue
		}
		if outcome.Bag.HasErrors() {
			hadErrors = true
		}
		if outcome.Bag.HasLint() {
			remaining = true
		}
		if !opts.quiet && outcome.FS != nil && outcome.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stdout, outcome.Bag, outcome.FS, diagfmt.PrettyOpts{
				Color:     opts.color,
				PathMode:  diagfmt.PathModeRelative,
				ShowNotes: true,
				ShowFixes: true,
			})
		}
	}

	if !opts.quiet {
		verb := "fixed"
		if dryRun {
			verb = "would fix"
		}
		fmt.Printf("%d files checked, %s %d findings in %d files\n",
			len(outcomes), verb, totalApplied, changedFiles)
	}

	// os.Exit skips deferred cleanup, so run it by hand first.
	switch {
	case hadErrors:
		stopProfiling()
		stopTracing()
		os.Exit(exitError)
	case remaining:
		stopProfiling()
		stopTracing()
		os.Exit(exitFindings)
	}
	return nil
}

func runFixBatch(cmd *cobra.Command, session *driver.Session, paths []string, unsafeFixes, dryRun, useTUI bool) ([]driver.FixOutcome, error) {
	if !useTUI {
		return session.FixPaths(cmd.Context(), paths, unsafeFixes, dryRun)
	}
	return runFixWithUI(cmd.Context(), session, paths, unsafeFixes, dryRun)
}
