// Package export evaluates placement scenarios and writes the results to
// PDF, Excel, and DXF reports.
package export

import (
	"github.com/piwi3910/TipPlace/internal/engine"
	"github.com/piwi3910/TipPlace/internal/model"
)

// Result is one scenario after a full positioning pass.
type Result struct {
	Scenario model.Scenario `json:"scenario"`
	Layout   model.Layout   `json:"layout"`
	Box      model.Rect     `json:"box"`
	// Fits is false when no candidate fit the padded viewport and the
	// least-overflow fallback was used.
	Fits bool `json:"fits"`
	// Forced is true when the scenario named its placement.
	Forced bool `json:"forced"`
}

// Evaluate runs the engine over every scenario, in order.
func Evaluate(eng *engine.Engine, scenarios []model.Scenario) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		layout := eng.Layout(s.Target, s.Tooltip, s.Viewport, s.Placement)
		fits := false
		for _, c := range layout.Candidates {
			if c.Placement == layout.Placement {
				fits = c.Fits()
				break
			}
		}
		results = append(results, Result{
			Scenario: s,
			Layout:   layout,
			Box:      layout.Box(s.Tooltip),
			Fits:     fits,
			Forced:   s.Placement.Valid(),
		})
	}
	return results
}

// Summary aggregates a set of results.
type Summary struct {
	Total       int
	Fitting     int
	Fallbacks   int
	ByPlacement map[model.Placement]int
}

// Summarize counts results per chosen placement.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results), ByPlacement: make(map[model.Placement]int)}
	for _, r := range results {
		if r.Fits {
			s.Fitting++
		} else {
			s.Fallbacks++
		}
		s.ByPlacement[r.Layout.Placement]++
	}
	return s
}
