package driver

import "context"

// Status is the progress state of one file.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "expanding"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Event reports progress of a directory expansion. An empty File means
// the event is about the run as a whole.
type Event struct {
	File   string
	Status Status
	// Sites is the number of expanded sites, set with StatusDone.
	Sites  int
	Cached bool
}

func emit(ctx context.Context, ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}
