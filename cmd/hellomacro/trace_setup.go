package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"hellomacro/internal/trace"
)

type traceState struct {
	tracer trace.Tracer
	mode   trace.StorageMode
	format trace.Format
	output string
}

// setupTracing inspects trace-related flags, attaches the tracer to the
// command context and returns the state needed to close it.
func setupTracing(cmd *cobra.Command) (*traceState, error) {
	flags := cmd.Root().PersistentFlags()

	output, err := flags.GetString("trace")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace flag")
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-level flag")
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-mode flag")
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-format flag")
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-ring-size flag")
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace без уровня включает фазы
	if output != "" && level == trace.LevelOff && !flags.Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return &traceState{tracer: trace.Nop}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	cfg := trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
	}
	if output == "" || output == "-" {
		cfg.Output = nopWriteCloser{cmd.ErrOrStderr()}
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tracer")
	}

	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return &traceState{tracer: tracer, mode: mode, format: format, output: output}, nil
}

// close flushes the tracer; in ring mode the buffered events are dumped
// to the trace output first.
func (s *traceState) close(stderr io.Writer) {
	if s == nil || s.tracer == nil {
		return
	}
	if s.mode == trace.ModeRing {
		if ring, ok := s.tracer.(*trace.RingTracer); ok {
			if err := dumpRing(ring, s.output, s.format, stderr); err != nil {
				fmt.Fprintf(stderr, "trace: dump error: %v\n", err)
			}
		}
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(stderr, "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(stderr, "trace: close error: %v\n", err)
	}
}

func dumpRing(ring *trace.RingTracer, output string, format trace.Format, stderr io.Writer) error {
	if format == trace.FormatAuto {
		format = trace.FormatText
	}
	if output == "" || output == "-" {
		return ring.Dump(stderr, format)
	}
	f, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "failed to open trace output")
	}
	if err := ring.Dump(f, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// nopWriteCloser не даёт трейсеру закрыть stderr команды.
type nopWriteCloser struct{ io.Writer }
