// Package prof wires the runtime profilers behind --cpu-profile,
// --mem-profile and --runtime-trace.
package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
	rtrace "runtime/trace"

	"github.com/cockroachdb/errors"
)

// Options name the output files; empty paths disable the profiler.
type Options struct {
	CPU   string
	Mem   string
	Trace string
}

// Enabled reports whether any profiler is requested.
func (o Options) Enabled() bool {
	return o.CPU != "" || o.Mem != "" || o.Trace != ""
}

// Session owns the profilers started by Start.
type Session struct {
	opts      Options
	cpuFile   *os.File
	traceFile *os.File
	stopped   bool
}

// Start enables the requested profilers. On error nothing stays running.
func Start(opts Options) (*Session, error) {
	s := &Session{opts: opts}
	if opts.CPU != "" {
		f, err := os.Create(opts.CPU)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errors.Wrap(err, "failed to start cpu profile")
		}
		s.cpuFile = f
	}
	if opts.Trace != "" {
		f, err := os.Create(opts.Trace)
		if err == nil {
			err = rtrace.Start(f)
			if err != nil {
				_ = f.Close()
			}
		}
		if err != nil {
			s.stopCPU()
			return nil, errors.Wrap(err, "failed to start runtime trace")
		}
		s.traceFile = f
	}
	return s, nil
}

// Stop finishes the trace and CPU profile, then writes the heap profile.
// It is safe to call on a nil or already stopped Session.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true

	var err error
	if s.traceFile != nil {
		rtrace.Stop()
		err = errors.CombineErrors(err, s.traceFile.Close())
		s.traceFile = nil
	}
	err = errors.CombineErrors(err, s.stopCPU())
	if s.opts.Mem != "" {
		err = errors.CombineErrors(err, writeHeap(s.opts.Mem))
	}
	return err
}

func (s *Session) stopCPU() error {
	if s.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpuFile.Close()
	s.cpuFile = nil
	return err
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create heap profile")
	}
	defer func() {
		err = errors.CombineErrors(err, f.Close())
	}()
	runtime.GC()
	return errors.Wrap(pprof.WriteHeapProfile(f), "failed to write heap profile")
}
