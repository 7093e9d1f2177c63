package driver

import (
	"encoding/json"
	"fmt"

	"hellomacro/internal/diag"
	"hellomacro/internal/observ"
	"hellomacro/internal/source"
)

type timingPayload struct {
	Kind     string               `json:"kind"`
	Path     string               `json:"path,omitempty"`
	TotalMS  float64              `json:"total_ms"`
	Sites    int                  `json:"sites"`
	Expanded int                  `json:"expanded"`
	Cached   bool                 `json:"cached"`
	Phases   []observ.PhaseReport `json:"phases,omitempty"`
}

func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "expand"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms, %d/%d sites", payload.Kind, payload.TotalMS, payload.Expanded, payload.Sites)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data))

	if bag.Add(entry) {
		return
	}
	// лимит не должен съедать тайминги
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
