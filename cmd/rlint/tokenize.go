package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rlint/internal/diagfmt"
	"rlint/internal/driver"
	"rlint/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.R>",
	Short: "Dump the token stream of one R file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	opts, err := readPersistentOpts(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	manifest, err := discoverManifest(args)
	if err != nil {
		return err
	}
	session := driver.NewSession(manifest, opts.driver)

	fileSet := source.NewFileSetWithBase(manifest.Root)
	tokens, bag, err := session.TokenizeFile(fileSet, args[0])
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		if err := diagfmt.FormatTokensPretty(os.Stdout, tokens, fileSet); err != nil {
			return err
		}
	case "json":
		if err := diagfmt.FormatTokensJSON(os.Stdout, tokens); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	// Lex errors go to stderr so the dump itself stays parseable.
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
