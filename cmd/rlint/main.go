package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rlint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rlint",
	Short: "Linter and auto-fixer for R scripts",
	Long:  `rlint checks R source files for common mistakes and can rewrite fixable ones in place`,
}

// Process exit codes: 0 clean, 1 lint findings, 2 errors (syntax, I/O, bad
// invocation).
const (
	exitClean    = 0
	exitFindings = 1
	exitError    = 2
)

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel workers (0: number of CPUs)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 1000, "maximum diagnostics per file")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the on-disk result cache")
	rootCmd.PersistentFlags().String("trace", "", "write pipeline trace events to a file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "file", "trace granularity (off|batch|file|phase)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to a file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to a file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to a file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitError)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
