package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rlint/internal/diagfmt"
	"rlint/internal/driver"
	"rlint/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.R>",
	Short: "Dump the syntax tree of one R file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty)")
}

func runParse(cmd *cobra.Command, args []string) error {
	opts, err := readPersistentOpts(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" {
		return fmt.Errorf("unknown format: %s", format)
	}

	manifest, err := discoverManifest(args)
	if err != nil {
		return err
	}
	session := driver.NewSession(manifest, opts.driver)

	fileSet := source.NewFileSetWithBase(manifest.Root)
	tree, bag, err := session.ParseOnly(fileSet, args[0])
	if err != nil {
		return err
	}

	if err := diagfmt.FormatTree(os.Stdout, tree, fileSet); err != nil {
		return err
	}

	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, fileSet, diagfmt.PrettyOpts{
			Color:    opts.color,
			PathMode: diagfmt.PathModeRelative,
		})
	}
	if bag.HasErrors() {
		os.Exit(exitError)
	}
	return nil
}
