package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"hellomacro/internal/diagfmt"
	"hellomacro/internal/driver"
)

func newParseCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse [flags] file.rs",
		Short: "Parse the first derive site (or the single declaration) of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
			if err != nil {
				return errors.Wrap(err, "failed to get max-diagnostics flag")
			}
			quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
			if err != nil {
				return errors.Wrap(err, "failed to get quiet flag")
			}
			if format != "pretty" && format != "json" {
				return errors.Newf("unknown format: %s", format)
			}

			result, err := driver.Parse(args[0], maxDiagnostics)
			if err != nil {
				return errors.Wrap(err, "parsing failed")
			}
			if result.Bag.Len() > 0 {
				errOut := cmd.ErrOrStderr()
				diagfmt.Pretty(errOut, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: useColor(cmd, errOut), Context: 1, ShowNotes: true})
			}
			if result.Decl == nil {
				return errReported
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				return diagfmt.FormatDeclJSON(out, result.Decl)
			}
			if result.Site != nil && !quiet {
				fmt.Fprintf(out, "site: %s\n", result.Site.Label())
			}
			return diagfmt.FormatDeclPretty(out, result.Decl, result.FileSet)
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
