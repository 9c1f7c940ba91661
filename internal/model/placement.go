package model

import (
	"fmt"
	"strings"
)

// Placement names where the tooltip sits relative to its target.
type Placement string

const (
	PlacementTop         Placement = "top"
	PlacementBottom      Placement = "bottom"
	PlacementLeft        Placement = "left"
	PlacementRight       Placement = "right"
	PlacementTopStart    Placement = "top-start"
	PlacementTopEnd      Placement = "top-end"
	PlacementBottomStart Placement = "bottom-start"
	PlacementBottomEnd   Placement = "bottom-end"
)

// PriorityOrder lists every placement from most to least preferred.
// Directly above wins, then its corners, then the sides, then below.
var PriorityOrder = []Placement{
	PlacementTop,
	PlacementTopStart,
	PlacementTopEnd,
	PlacementLeft,
	PlacementRight,
	PlacementBottomStart,
	PlacementBottomEnd,
	PlacementBottom,
}

// Side is the base direction of a placement with its corner alignment dropped.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Valid reports whether p is one of the eight known placements.
func (p Placement) Valid() bool {
	return p.Priority() >= 0
}

// Priority returns the ordinal of p in PriorityOrder, or -1 when unknown.
func (p Placement) Priority() int {
	for i, candidate := range PriorityOrder {
		if candidate == p {
			return i
		}
	}
	return -1
}

// Side drops any -start/-end suffix. Unknown placements map to SideTop.
func (p Placement) Side() Side {
	base, _, _ := strings.Cut(string(p), "-")
	switch Side(base) {
	case SideTop, SideBottom, SideLeft, SideRight:
		return Side(base)
	default:
		return SideTop
	}
}

// Vertical reports whether the side places the tooltip above or below the target.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

func (p Placement) String() string { return string(p) }

// ParsePlacement converts user input into a Placement. Matching is
// case-insensitive and tolerates surrounding whitespace and underscores.
func ParsePlacement(s string) (Placement, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	p := Placement(normalized)
	if !p.Valid() {
		return "", fmt.Errorf("unknown placement %q", s)
	}
	return p, nil
}

// PlacementOptions returns the placement names for select widgets, in priority order.
func PlacementOptions() []string {
	names := make([]string, len(PriorityOrder))
	for i, p := range PriorityOrder {
		names[i] = string(p)
	}
	return names
}

// Overflow holds how far a candidate box extends past each padded viewport edge.
// Every component is non-negative.
type Overflow struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Total sums the four overflow components.
func (o Overflow) Total() float64 {
	return o.Top + o.Bottom + o.Left + o.Right
}

// Candidate is one scored placement. Candidates are recomputed on every
// positioning pass and never cached.
type Candidate struct {
	Placement Placement `json:"placement"`
	Priority  int       `json:"priority"`
	Overflow  Overflow  `json:"overflow"`
	Total     float64   `json:"total"`
	Center    Point     `json:"center"`
	Box       Rect      `json:"box"`
}

// Fits reports whether the candidate lies entirely inside the padded viewport.
func (c Candidate) Fits() bool {
	return c.Total == 0
}

// Layout is the result of one full positioning pass.
type Layout struct {
	Placement   Placement   `json:"placement"`
	Side        Side        `json:"side"`
	Position    Point       `json:"position"`     // clamped top-left corner
	ArrowOffset float64     `json:"arrow_offset"` // along the edge facing the target
	Candidates  []Candidate `json:"candidates,omitempty"`
}

// Box returns the tooltip rectangle the layout produces for a tooltip of size tip.
func (l Layout) Box(tip Size) Rect {
	return RectAt(l.Position, tip)
}

// Arrow returns the arrow triangle for a tooltip of size tip: the two base
// corners on the edge facing the target, then the apex pointing at it.
func (l Layout) Arrow(tip Size, size float64) [3]Point {
	box := l.Box(tip)
	switch l.Side {
	case SideBottom:
		x := box.Left + l.ArrowOffset
		return [3]Point{{X: x - size, Y: box.Top}, {X: x + size, Y: box.Top}, {X: x, Y: box.Top - size}}
	case SideLeft:
		y := box.Top + l.ArrowOffset
		return [3]Point{{X: box.Right, Y: y - size}, {X: box.Right, Y: y + size}, {X: box.Right + size, Y: y}}
	case SideRight:
		y := box.Top + l.ArrowOffset
		return [3]Point{{X: box.Left, Y: y - size}, {X: box.Left, Y: y + size}, {X: box.Left - size, Y: y}}
	default:
		x := box.Left + l.ArrowOffset
		return [3]Point{{X: x - size, Y: box.Bottom}, {X: x + size, Y: box.Bottom}, {X: x, Y: box.Bottom + size}}
	}
}
