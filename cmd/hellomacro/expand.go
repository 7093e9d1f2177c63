package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"hellomacro/internal/cfgpred"
	"hellomacro/internal/diag"
	"hellomacro/internal/diagfmt"
	"hellomacro/internal/driver"
	"hellomacro/internal/source"
)

type expandFlags struct {
	format         string
	jobs           int
	message        string
	config         string
	cache          bool
	ui             string
	features       []string
	cfg            []string
	timings        bool
	reportDisabled bool
	outDir         string
}

func newExpandCmd() *cobra.Command {
	var f expandFlags
	cmd := &cobra.Command{
		Use:   "expand [flags] <file.rs|directory|->",
		Short: "Expand #[derive(HelloMacro)] in a file or every *.rs file of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.format, "format", "pretty", "output format (pretty|json)")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().StringVar(&f.message, "message", "", "greeting template; supports {name} and {kind}")
	cmd.Flags().StringVar(&f.config, "config", "", "path to hellomacro.toml (default: search upwards)")
	cmd.Flags().BoolVar(&f.cache, "cache", false, "reuse expansions from the on-disk cache")
	cmd.Flags().StringVar(&f.ui, "ui", "auto", "progress view for directories (auto|on|off)")
	cmd.Flags().StringSliceVar(&f.features, "features", nil, "enabled cargo features for cfg(feature = \"...\")")
	cmd.Flags().StringSliceVar(&f.cfg, "cfg", nil, "extra cfg names, e.g. test or debug_assertions")
	cmd.Flags().BoolVar(&f.timings, "timings", false, "report per-file timings")
	cmd.Flags().BoolVar(&f.reportDisabled, "report-disabled", false, "report sites skipped by cfg")
	cmd.Flags().StringVar(&f.outDir, "out-dir", "", "write expanded files under this directory; pretty output is suppressed, --format json still reports")
	return cmd
}

func runExpand(cmd *cobra.Command, target string, f expandFlags) error {
	if f.format != "pretty" && f.format != "json" {
		return errors.Newf("unknown format: %s", f.format)
	}
	mode, err := readUIMode(f.ui)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return errors.Wrap(err, "failed to get quiet flag")
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return errors.Wrap(err, "failed to get max-diagnostics flag")
	}

	start := target
	if target == "-" {
		start = "."
	}
	conf, err := loadConfig(f.config, start)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, f, conf)
	if err != nil {
		return err
	}
	opts.MaxDiagnostics = maxDiagnostics

	ctx := cmd.Context()
	var (
		fs      *source.FileSet
		results []driver.FileResult
		base    string
	)
	switch info, statErr := os.Stat(target); {
	case target == "-":
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap(err, "failed to read stdin")
		}
		var res driver.FileResult
		fs, res = driver.ExpandText(ctx, "<stdin>", src, opts)
		results = []driver.FileResult{res}
	case statErr != nil:
		return errors.Wrapf(statErr, "failed to access %s", target)
	case info.IsDir():
		base = target
		fs, results, err = expandDir(ctx, cmd, target, opts, mode, f.format == "pretty" && !quiet)
		if err != nil {
			return err
		}
	default:
		base = filepath.Dir(target)
		var res driver.FileResult
		fs, res, err = driver.ExpandFile(ctx, target, opts)
		if err != nil {
			return err
		}
		results = []driver.FileResult{res}
	}

	// --out-dir пишет файлы; JSON-отчёт при этом всё равно печатается
	if f.outDir != "" {
		if err := writeOutDir(f.outDir, base, results); err != nil {
			return err
		}
	}
	switch {
	case f.format == "json":
		if err := writeExpandJSON(cmd.OutOrStdout(), fs, results); err != nil {
			return err
		}
	case f.outDir == "":
		writeExpandPretty(cmd, fs, results, quiet)
	}

	for _, r := range results {
		if r.Failed() {
			return errReported
		}
	}
	return nil
}

func expandDir(ctx context.Context, cmd *cobra.Command, dir string, opts driver.Options, mode uiMode, allowUI bool) (*source.FileSet, []driver.FileResult, error) {
	if !allowUI || !shouldUseTUI(mode, cmd.ErrOrStderr()) {
		return driver.ExpandDir(ctx, dir, opts)
	}
	paths, err := driver.ListSources(dir)
	if err != nil {
		return nil, nil, err
	}
	fs := source.NewFileSetWithBase(dir)
	results, err := runExpandWithUI(ctx, "expanding "+dir, fs, paths, opts, cmd.ErrOrStderr())
	return fs, results, err
}

// driverOptions merges the config file with flags; flags win.
func driverOptions(cmd *cobra.Command, f expandFlags, conf *loadedConfig) (driver.Options, error) {
	opts := driver.Options{
		Jobs:           f.jobs,
		Timings:        f.timings,
		ReportDisabled: f.reportDisabled,
	}
	features := f.features
	names := f.cfg
	useCache := f.cache
	if conf != nil {
		if conf.MessageSet {
			opts.Message, opts.MessageSet = conf.Config.Derive.Message, true
		}
		if conf.JobsSet && !cmd.Flags().Changed("jobs") {
			opts.Jobs = conf.Config.Expand.Jobs
		}
		if conf.CacheSet && !cmd.Flags().Changed("cache") {
			useCache = conf.Config.Expand.Cache
		}
		features = append(append([]string(nil), conf.Config.Cfg.Features...), features...)
		names = append(append([]string(nil), conf.Config.Cfg.Flags...), names...)
	}
	if cmd.Flags().Changed("message") {
		opts.Message, opts.MessageSet = f.message, true
	}
	opts.Resolver = resolverFor(features, names, conf != nil && conf.Config.Cfg.Debug)

	if useCache {
		cache, err := driver.OpenDiskCache("hellomacro")
		if err != nil {
			return opts, errors.Wrap(err, "failed to open expansion cache")
		}
		opts.Cache = cache
	}
	return opts, nil
}

// resolverFor describes the host plus user-enabled features and names.
func resolverFor(features, names []string, debug bool) cfgpred.Resolver {
	r := cfgpred.Host()
	r.Features = features
	r.Debug = debug
	for _, n := range names {
		switch n {
		case "test":
			r.Test = true
		case "debug_assertions":
			r.Debug = true
		default:
			r.Flags = append(r.Flags, n)
		}
	}
	return r
}

func writeExpandPretty(cmd *cobra.Command, fs *source.FileSet, results []driver.FileResult, quiet bool) {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	opts := diagfmt.PrettyOpts{Color: useColor(cmd, errOut), Context: 1, ShowNotes: true}

	var files, sites, failed int
	for i, r := range results {
		if r.Bag != nil && r.Bag.Len() > 0 && !(quiet && !r.Bag.HasErrors()) {
			diagfmt.Pretty(errOut, r.Bag, fs, opts)
			fmt.Fprintln(errOut)
		}
		if r.Failed() {
			failed++
		}
		if r.Output == nil {
			continue
		}
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "// %s\n", r.Path)
		}
		_, _ = out.Write(r.Output)
		files++
		sites += r.Expanded()
	}
	if !quiet && len(results) > 1 {
		fmt.Fprintf(errOut, "expanded %d sites in %d files, %d failed\n", sites, files, failed)
	}
}

func writeOutDir(outDir, base string, results []driver.FileResult) error {
	for _, r := range results {
		if r.Output == nil {
			continue
		}
		rel, err := filepath.Rel(base, r.Path)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = filepath.Base(r.Path)
		}
		dst := filepath.Join(outDir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return errors.Wrapf(err, "failed to create %s", filepath.Dir(dst))
		}
		if err := os.WriteFile(dst, r.Output, 0o644); err != nil { // #nosec G306 -- generated sources
			return errors.Wrapf(err, "failed to write %s", dst)
		}
	}
	return nil
}

type expandFileJSON struct {
	Path        string                    `json:"path"`
	Cached      bool                      `json:"cached,omitempty"`
	Output      *string                   `json:"output"`
	Sites       []expandSiteJSON          `json:"sites"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

type expandSiteJSON struct {
	Label  string `json:"label"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
	Status string `json:"status"`
	Impl   string `json:"impl,omitempty"`
}

type expandJSON struct {
	Files []expandFileJSON `json:"files"`
}

func writeExpandJSON(w io.Writer, fs *source.FileSet, results []driver.FileResult) error {
	payload := expandJSON{Files: make([]expandFileJSON, 0, len(results))}
	for _, r := range results {
		entry := expandFileJSON{Path: r.Path, Cached: r.Cached, Sites: []expandSiteJSON{}}
		if r.Output != nil {
			text := string(r.Output)
			entry.Output = &text
		}
		for _, s := range r.Sites {
			pos, _ := fs.Resolve(s.Span)
			status := "expanded"
			switch {
			case s.Disabled:
				status = "disabled"
			case s.Failed:
				status = "failed"
			}
			entry.Sites = append(entry.Sites, expandSiteJSON{
				Label:  s.Label,
				Line:   pos.Line,
				Column: pos.Col,
				Status: status,
				Impl:   s.Text,
			})
		}
		var items []diag.Diagnostic
		if r.Bag != nil {
			items = r.Bag.Items()
		}
		entry.Diagnostics = diagfmt.BuildDiagnosticsOutput(items, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
		payload.Files = append(payload.Files, entry)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
