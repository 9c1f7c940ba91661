package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/TipPlace/internal/model"
)

// Engine computes tooltip placements. It is pure arithmetic over the
// rectangles it is given and holds nothing but its spacing configuration,
// so a single Engine can be shared freely.
type Engine struct {
	cfg model.Config
}

func New(cfg model.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the spacing the engine was built with.
func (e *Engine) Config() model.Config {
	return e.cfg
}

// Center returns the tooltip center for placement p so that the tooltip sits
// next to the target separated by the configured gap. Unknown placements are
// treated as top.
func (e *Engine) Center(p model.Placement, target model.Rect, tip model.Size) model.Point {
	gap := e.cfg.Gap
	above := target.Top - gap - tip.Height/2
	below := target.Bottom + gap + tip.Height/2
	before := target.Left - gap - tip.Width/2
	after := target.Right + gap + tip.Width/2

	switch p {
	case model.PlacementBottom:
		return model.Point{X: target.CenterX(), Y: below}
	case model.PlacementLeft:
		return model.Point{X: before, Y: target.CenterY()}
	case model.PlacementRight:
		return model.Point{X: after, Y: target.CenterY()}
	case model.PlacementTopStart:
		return model.Point{X: before, Y: above}
	case model.PlacementTopEnd:
		return model.Point{X: after, Y: above}
	case model.PlacementBottomStart:
		return model.Point{X: before, Y: below}
	case model.PlacementBottomEnd:
		return model.Point{X: after, Y: below}
	default:
		return model.Point{X: target.CenterX(), Y: above}
	}
}

// Position returns the unclamped top-left corner of the tooltip for placement p.
func (e *Engine) Position(p model.Placement, target model.Rect, tip model.Size) model.Point {
	c := e.Center(p, target, tip)
	return model.Point{X: c.X - tip.Width/2, Y: c.Y - tip.Height/2}
}

// Score measures how far the tooltip would spill past the padded viewport
// if it were shown at placement p.
func (e *Engine) Score(p model.Placement, target model.Rect, tip model.Size, viewport model.Size) model.Candidate {
	pad := e.cfg.ViewportPad
	center := e.Center(p, target, tip)
	box := model.NewRect(center.X-tip.Width/2, center.Y-tip.Height/2, tip.Width, tip.Height)

	overflow := model.Overflow{
		Top:    math.Max(0, pad-box.Top),
		Bottom: math.Max(0, box.Bottom-(viewport.Height-pad)),
		Left:   math.Max(0, pad-box.Left),
		Right:  math.Max(0, box.Right-(viewport.Width-pad)),
	}

	priority := p.Priority()
	if priority < 0 {
		priority = len(model.PriorityOrder)
	}
	return model.Candidate{
		Placement: p,
		Priority:  priority,
		Overflow:  overflow,
		Total:     overflow.Total(),
		Center:    center,
		Box:       box,
	}
}

// Candidates scores all eight placements in priority order.
func (e *Engine) Candidates(target model.Rect, tip model.Size, viewport model.Size) []model.Candidate {
	candidates := make([]model.Candidate, 0, len(model.PriorityOrder))
	for _, p := range model.PriorityOrder {
		candidates = append(candidates, e.Score(p, target, tip, viewport))
	}
	return candidates
}

// ChooseBest picks a placement for the tooltip. The first candidate in
// priority order that fits entirely wins outright; when none fits, the
// candidate with the least total overflow wins, ties going to priority.
func (e *Engine) ChooseBest(target model.Rect, tip model.Size, viewport model.Size) model.Placement {
	return Select(e.Candidates(target, tip, viewport)).Placement
}

// Select applies the ChooseBest rule to already scored candidates, which must
// be in priority order. It panics on an empty slice.
func Select(candidates []model.Candidate) model.Candidate {
	for _, c := range candidates {
		if c.Fits() {
			return c
		}
	}

	ranked := make([]model.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total < ranked[j].Total
		}
		return ranked[i].Priority < ranked[j].Priority
	})
	return ranked[0]
}

// Clamp keeps the tooltip's top-left corner inside the padded viewport.
// When the tooltip is larger than the padded viewport the range inverts;
// the lower bound (the pad) wins so the tooltip's leading edge stays visible.
func (e *Engine) Clamp(pos model.Point, tip model.Size, viewport model.Size) model.Point {
	pad := e.cfg.ViewportPad
	return model.Point{
		X: clampRange(pos.X, pad, viewport.Width-tip.Width-pad),
		Y: clampRange(pos.Y, pad, viewport.Height-tip.Height-pad),
	}
}

func clampRange(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsNaN(hi) || hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

// ArrowOffset returns where along the tooltip's facing edge the arrow sits so
// it points at the target's center. The result stays minArrowPad away from
// both ends of the edge; a tooltip too short for that gets its midpoint.
func (e *Engine) ArrowOffset(p model.Placement, tipRect, targetRect model.Rect) float64 {
	pad := e.cfg.MinArrowPad

	var targetCenter, tipStart, tipSize float64
	if p.Side().Vertical() {
		targetCenter = targetRect.CenterX()
		tipStart = tipRect.Left
		tipSize = tipRect.Width
	} else {
		targetCenter = targetRect.CenterY()
		tipStart = tipRect.Top
		tipSize = tipRect.Height
	}

	if tipSize < 2*pad {
		return math.Max(0, tipSize/2)
	}
	return clampRange(targetCenter-tipStart, pad, tipSize-pad)
}

// Layout runs a complete positioning pass: choose a placement (or honor a
// valid preferred one), compute and clamp the position, then place the arrow
// against the clamped box. Identical inputs always yield identical output.
func (e *Engine) Layout(target model.Rect, tip model.Size, viewport model.Size, preferred model.Placement) model.Layout {
	candidates := e.Candidates(target, tip, viewport)

	placement := preferred
	if !placement.Valid() {
		placement = Select(candidates).Placement
	}

	pos := e.Clamp(e.Position(placement, target, tip), tip, viewport)
	box := model.RectAt(pos, tip)

	return model.Layout{
		Placement:   placement,
		Side:        placement.Side(),
		Position:    pos,
		ArrowOffset: e.ArrowOffset(placement, box, target),
		Candidates:  candidates,
	}
}
