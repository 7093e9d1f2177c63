package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"hellomacro/internal/cfgpred"
)

type cfgResultJSON struct {
	Predicate string   `json:"predicate"`
	Value     bool     `json:"value"`
	Unknown   []string `json:"unknown,omitempty"`
}

func newCfgCmd() *cobra.Command {
	var (
		format   string
		features []string
		names    []string
		target   string
	)
	cmd := &cobra.Command{
		Use:   `cfg [flags] <predicate>`,
		Short: "Evaluate a cfg predicate, e.g. 'all(unix, feature = \"serde\")'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "pretty" && format != "json" {
				return errors.Newf("unknown format: %s", format)
			}
			e, err := cfgpred.ParseString(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid predicate %q", args[0])
			}

			r := resolverFor(features, names, false)
			if target != "" {
				goos, goarch, ok := strings.Cut(target, "/")
				if !ok {
					return errors.Newf("invalid --target %q (expected GOOS/GOARCH)", target)
				}
				host := cfgpred.ForPlatform(goos, goarch)
				host.Features, host.Flags, host.Test, host.Debug = r.Features, r.Flags, r.Test, r.Debug
				r = host
			}

			res := cfgResultJSON{Predicate: e.String(), Value: r.Eval(e)}
			for _, u := range r.Unknown(e) {
				res.Unknown = append(res.Unknown, u.String())
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(out, "cfg(%s) = %t\n", res.Predicate, res.Value)
			for _, u := range res.Unknown {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown cfg predicate `%s`, treated as false\n", u)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	cmd.Flags().StringSliceVar(&features, "features", nil, "enabled cargo features")
	cmd.Flags().StringSliceVar(&names, "cfg", nil, "extra cfg names")
	cmd.Flags().StringVar(&target, "target", "", "evaluate for GOOS/GOARCH instead of the host")
	return cmd
}
