package model

import "github.com/google/uuid"

// Scenario is one placement problem: a target inside a viewport and the
// measured size of the tooltip that should point at it.
type Scenario struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Viewport  Size      `json:"viewport"`
	Target    Rect      `json:"target"`
	Tooltip   Size      `json:"tooltip"`
	Placement Placement `json:"placement,omitempty"` // forced placement; empty lets the engine choose
}

func NewScenario(label string, viewport Size, target Rect, tooltip Size) Scenario {
	return Scenario{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Viewport: viewport,
		Target:   target.Normalized(),
		Tooltip:  tooltip,
	}
}

// ScenarioSet groups scenarios evaluated with one configuration.
type ScenarioSet struct {
	Name      string     `json:"name"`
	Config    Config     `json:"config"`
	Scenarios []Scenario `json:"scenarios"`
}

// NewScenarioSet returns an empty set using the default configuration.
func NewScenarioSet(name string) ScenarioSet {
	return ScenarioSet{
		Name:      name,
		Config:    DefaultConfig(),
		Scenarios: []Scenario{},
	}
}
