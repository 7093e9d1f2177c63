package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hellomacro/internal/prof"
	"hellomacro/internal/version"
)

// errReported означает, что диагностики уже напечатаны; печатать нечего.
var errReported = errors.New("errors reported")

// app holds per-invocation state shared by the commands.
type app struct {
	trace *traceState
	prof  *prof.Session
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if perr := a.prof.Stop(); perr != nil {
		fmt.Fprintf(stderr, "warning: %v\n", perr)
	}
	a.trace.close(stderr)
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "hellomacro",
		Short: "Expand #[derive(HelloMacro)] in Rust sources",
		Long: `hellomacro finds items annotated with #[derive(HelloMacro)] and generates
their HelloMacro impls, honoring #[cfg(...)] and #[hello_macro(message = "...")].`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyColorFlag(cmd); err != nil {
				return err
			}
			st, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			a.trace = st
			session, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			a.prof = session
			return nil
		},
	}

	root.SetVersionTemplate("{{.Version}}\n")

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	root.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")

	root.AddCommand(newExpandCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newCfgCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// setupProfiling starts the profilers named by the persistent flags.
// A nil session means profiling is off.
func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, errors.Wrap(err, "failed to get cpu-profile flag")
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, errors.Wrap(err, "failed to get mem-profile flag")
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, errors.Wrap(err, "failed to get runtime-trace flag")
	}
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}

// applyColorFlag настраивает fatih/color глобально для --color on|off.
func applyColorFlag(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return errors.Wrap(err, "failed to get color flag")
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(cmd.OutOrStdout())
	default:
		return errors.Newf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// useColor reports whether output written to w should be colored.
func useColor(cmd *cobra.Command, w io.Writer) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(w)
	}
}

// isTerminal проверяет, является ли w терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
