package main

import (
	"context"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"hellomacro/internal/driver"
	"hellomacro/internal/source"
	"hellomacro/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", errors.Newf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode, out io.Writer) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(out)
	}
}

type expandOutcome struct {
	results []driver.FileResult
	err     error
}

// runExpandWithUI expands paths while the progress view renders to out.
func runExpandWithUI(ctx context.Context, title string, fs *source.FileSet, paths []string, opts driver.Options, out io.Writer) ([]driver.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan expandOutcome, 1)
	opts.Events = events

	go func() {
		res, err := driver.ExpandPaths(ctx, fs, paths, opts)
		outcomeCh <- expandOutcome{results: res, err: err}
		close(events)
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, paths, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// драйвер не должен зависнуть на канале событий
		cancel()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, errors.Wrap(uiErr, "progress view failed")
	}
	return outcome.results, outcome.err
}
