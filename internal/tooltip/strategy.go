package tooltip

import (
	"fmt"

	"github.com/piwi3910/TipPlace/internal/engine"
	"github.com/piwi3910/TipPlace/internal/model"
)

// strategy applies engine output to one kind of surface.
type strategy interface {
	mode() Mode
	surface() Surface
	present(target Target, text string, preferred model.Placement) (model.Layout, error)
	// refresh re-runs the part of the pass that depends on live geometry.
	refresh(target Target, last model.Layout) model.Layout
}

type coordinateStrategy struct {
	eng      *engine.Engine
	surf     CoordinateSurface
	viewport func() model.Size
}

func (s *coordinateStrategy) mode() Mode       { return ModeCoordinate }
func (s *coordinateStrategy) surface() Surface { return s.surf }

func (s *coordinateStrategy) present(target Target, text string, preferred model.Placement) (model.Layout, error) {
	// Content goes in first so the measured size is accurate.
	s.surf.SetText(text)
	tip := s.surf.Measure()

	layout := s.eng.Layout(target.Bounds(), tip, s.viewport(), preferred)
	s.surf.ShowAt(layout.Position)
	layout.ArrowOffset = s.eng.ArrowOffset(layout.Placement, s.surf.Bounds(), target.Bounds())
	s.surf.SetArrow(layout.Side, layout.ArrowOffset)
	return layout, nil
}

func (s *coordinateStrategy) refresh(target Target, last model.Layout) model.Layout {
	preferred, _ := target.Placement()
	layout, _ := s.present(target, target.TooltipText(), preferred)
	return layout
}

type anchoredStrategy struct {
	eng      *engine.Engine
	surf     AnchoredSurface
	viewport func() model.Size
}

func (s *anchoredStrategy) mode() Mode       { return ModeAnchored }
func (s *anchoredStrategy) surface() Surface { return s.surf }

func (s *anchoredStrategy) present(target Target, text string, preferred model.Placement) (model.Layout, error) {
	s.surf.SetText(text)
	tip := s.surf.Measure()
	bounds := target.Bounds()

	candidates := s.eng.Candidates(bounds, tip, s.viewport())
	placement := preferred
	if !placement.Valid() {
		placement = engine.Select(candidates).Placement
	}

	if err := s.surf.ShowAnchored(target, placement); err != nil {
		return model.Layout{}, fmt.Errorf("anchor tooltip to %s: %w", target.ID(), err)
	}

	layout := model.Layout{
		Placement:  placement,
		Side:       placement.Side(),
		Candidates: candidates,
	}
	return s.placeArrow(target, layout), nil
}

// refresh keeps the placement the platform is anchored with and only moves
// the arrow, since the platform tracks the target on its own.
func (s *anchoredStrategy) refresh(target Target, last model.Layout) model.Layout {
	return s.placeArrow(target, last)
}

func (s *anchoredStrategy) placeArrow(target Target, layout model.Layout) model.Layout {
	box := s.surf.Bounds()
	layout.Position = model.Point{X: box.Left, Y: box.Top}
	layout.ArrowOffset = s.eng.ArrowOffset(layout.Placement, box, target.Bounds())
	s.surf.SetArrow(layout.Side, layout.ArrowOffset)
	return layout
}
