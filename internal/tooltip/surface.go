// Package tooltip drives a single shared tooltip for every annotated target
// in a window. It turns interaction events into positioning passes of the
// placement engine and applies the result through a rendering strategy.
package tooltip

import "github.com/piwi3910/TipPlace/internal/model"

// Target is an annotated element that can own the tooltip.
type Target interface {
	ID() string
	// Bounds returns the target's current box in viewport coordinates.
	Bounds() model.Rect
	// TooltipText returns the tooltip content. Empty text shows nothing.
	TooltipText() string
	// Placement returns a placement forced by the target, if any.
	Placement() (model.Placement, bool)
	// Contains reports whether other is the target itself or nested inside it.
	Contains(other Target) bool
}

// Surface is the floating element the tooltip is drawn on.
type Surface interface {
	SetText(text string)
	// Measure returns the tooltip size for the current text.
	Measure() model.Size
	// Bounds returns the box the tooltip currently occupies on screen.
	Bounds() model.Rect
	SetArrow(side model.Side, offset float64)
	Hide()
	Visible() bool
}

// CoordinateSurface is positioned by explicit viewport coordinates.
type CoordinateSurface interface {
	Surface
	ShowAt(pos model.Point)
}

// AnchoredSurface lets the platform keep the tooltip attached to its target.
// Only a placement name is needed; the platform works out the coordinates.
type AnchoredSurface interface {
	Surface
	// Supported reports whether the platform offers anchored positioning at all.
	// It is consulted once, when the controller is built.
	Supported() bool
	ShowAnchored(target Target, p model.Placement) error
}

// Mode identifies the rendering strategy selected at setup.
type Mode int

const (
	ModeCoordinate Mode = iota // explicit x/y from the engine
	ModeAnchored               // platform anchoring, engine only picks the placement
)

func (m Mode) String() string {
	switch m {
	case ModeAnchored:
		return "anchored"
	default:
		return "coordinate"
	}
}
