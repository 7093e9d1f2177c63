package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"hellomacro/internal/diagfmt"
	"hellomacro/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.rs",
		Short: "Print the tokens of a Rust source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
			if err != nil {
				return errors.Wrap(err, "failed to get max-diagnostics flag")
			}
			if format != "pretty" && format != "json" {
				return errors.Newf("unknown format: %s", format)
			}

			result, err := driver.Tokenize(args[0], maxDiagnostics)
			if err != nil {
				return errors.Wrap(err, "tokenization failed")
			}

			// Диагностику в stderr, токены в stdout
			if result.Bag.Len() > 0 {
				errOut := cmd.ErrOrStderr()
				diagfmt.Pretty(errOut, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: useColor(cmd, errOut), Context: 1})
			}
			if format == "json" {
				err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
			} else {
				err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
			}
			if err != nil {
				return err
			}
			if result.Bag.HasErrors() {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
