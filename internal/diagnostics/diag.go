package diagnostics

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coreman2200/panelfx/internal/geometry"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/rgb"
)

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// overlapRatio is the centroid distance, in adjacent spacings, below which
// two panels are reported as stacked.
const overlapRatio = 0.1

// Check inspects the session inputs the effects depend on.
func Check(l *layout.Layout, p rgb.Palette) []Diagnostic {
	var out []Diagnostic
	if l == nil || l.Count() == 0 {
		return append(out, Diagnostic{
			Severity:       Err,
			Code:           "LAYOUT.EMPTY",
			Summary:        "Layout has no panels",
			SuggestedFixes: []string{"add panels under layout.panels in the config"},
		})
	}

	if len(p) == 0 {
		out = append(out, Diagnostic{
			Severity: Warn,
			Code:     "PALETTE.EMPTY",
			Summary:  "Palette is empty; effects fall back to fixed colours",
			Evidence: map[string]any{"fallback": []string{"grey", "white", "black"}},
		})
	}

	if l.Count() == 1 {
		out = append(out, Diagnostic{
			Severity:     Warn,
			Code:         "LAYOUT.SINGLE",
			Summary:      "Single panel layout",
			Detail:       "Moving sources need two panels to pick a direction, so star effects stay dark.",
			LikelyCauses: []string{"only the controller panel is configured"},
		})
	}

	seen := map[int]int{}
	for i, panel := range l.Panels {
		if j, ok := seen[panel.ID]; ok {
			out = append(out, Diagnostic{
				Severity:       Err,
				Code:           "LAYOUT.DUP_ID",
				Summary:        fmt.Sprintf("Panel id %d appears more than once", panel.ID),
				SuggestedFixes: []string{"give every panel a unique id"},
				Evidence:       map[string]any{"id": panel.ID, "first": j, "again": i},
			})
			continue
		}
		seen[panel.ID] = i
	}

	tol := l.AdjacentDistance() * overlapRatio
	for i := range l.Panels {
		for j := i + 1; j < len(l.Panels); j++ {
			a, b := l.Panels[i].Shape.Centroid(), l.Panels[j].Shape.Centroid()
			if geometry.Near(a, b, tol) {
				out = append(out, Diagnostic{
					Severity:     Warn,
					Code:         "LAYOUT.OVERLAP",
					Summary:      fmt.Sprintf("Panels %d and %d share a position", l.Panels[i].ID, l.Panels[j].ID),
					LikelyCauses: []string{"copied panel entry", "coordinates in the wrong units"},
					Evidence:     map[string]any{"a": l.Panels[i].ID, "b": l.Panels[j].ID, "x": a.X, "y": a.Y},
				})
			}
		}
	}
	return out
}

// Log writes every diagnostic at the level matching its severity.
func Log(log zerolog.Logger, ds []Diagnostic) {
	for _, d := range ds {
		ev := log.Info()
		switch d.Severity {
		case Warn:
			ev = log.Warn()
		case Err:
			ev = log.Error()
		}
		ev = ev.Str("code", d.Code)
		if d.Detail != "" {
			ev = ev.Str("detail", d.Detail)
		}
		if len(d.Evidence) > 0 {
			ev = ev.Fields(d.Evidence)
		}
		ev.Msg(d.Summary)
	}
}

// Fatal reports whether any diagnostic is an error.
func Fatal(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == Err {
			return true
		}
	}
	return false
}
