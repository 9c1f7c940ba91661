package widgets

import (
	"errors"

	"fyne.io/fyne/v2"

	"github.com/piwi3910/TipPlace/internal/engine"
	"github.com/piwi3910/TipPlace/internal/model"
	"github.com/piwi3910/TipPlace/internal/tooltip"
)

var errNotOnCanvas = errors.New("target has no canvas object")

// canvasTarget is a tooltip target backed by a Fyne object.
type canvasTarget interface {
	CanvasObject() fyne.CanvasObject
}

// AnchorLayer anchors the tooltip inside the scrolled content next to its
// target, so the toolkit carries it along when the content scrolls. Only the
// side is chosen by the engine; the bubble is never clamped to the viewport.
type AnchorLayer struct {
	local *TipLayer
	frame *TipLayer
	eng   *engine.Engine
}

var _ tooltip.AnchoredSurface = (*AnchorLayer)(nil)

// NewAnchorLayer creates an anchor layer. Stack CanvasObject above the
// scrolled content; bounds are reported in frame's coordinates.
func NewAnchorLayer(frame *TipLayer, eng *engine.Engine) *AnchorLayer {
	return &AnchorLayer{
		local: NewTipLayer(eng.Config().ArrowSize),
		frame: frame,
		eng:   eng,
	}
}

// CanvasObject returns the layer to stack above the scrolled content.
func (a *AnchorLayer) CanvasObject() fyne.CanvasObject {
	return a.local.CanvasObject()
}

func (a *AnchorLayer) Supported() bool {
	return a.frame != nil
}

func (a *AnchorLayer) SetText(text string) {
	a.local.SetText(text)
}

func (a *AnchorLayer) Measure() model.Size {
	return a.local.Measure()
}

func (a *AnchorLayer) Bounds() model.Rect {
	if !a.local.Visible() {
		return a.local.Bounds()
	}
	return a.frame.RectOf(a.local.Bubble())
}

func (a *AnchorLayer) SetArrow(side model.Side, offset float64) {
	a.local.SetArrow(side, offset)
}

// ShowAnchored places the bubble on side p of the target in the layer's own
// coordinates.
func (a *AnchorLayer) ShowAnchored(target tooltip.Target, p model.Placement) error {
	ct, ok := target.(canvasTarget)
	if !ok || ct.CanvasObject() == nil {
		return errNotOnCanvas
	}
	rel := a.local.RectOf(ct.CanvasObject())
	a.local.ShowAt(a.eng.Position(p, rel, a.local.Measure()))
	return nil
}

func (a *AnchorLayer) Hide() {
	a.local.Hide()
}

func (a *AnchorLayer) Visible() bool {
	return a.local.Visible()
}
