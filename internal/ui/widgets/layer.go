package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/piwi3910/TipPlace/internal/model"
)

// TipLayer is a transparent overlay stacked above the window content. It is
// the viewport for coordinate positioning: the bubble is moved to engine
// coordinates relative to the layer's origin.
type TipLayer struct {
	bubble *Bubble
	layer  *fyne.Container
}

// NewTipLayer creates a hidden layer holding one bubble.
func NewTipLayer(arrowSize float64) *TipLayer {
	b := NewBubble(arrowSize)
	b.Hide()
	return &TipLayer{
		bubble: b,
		layer:  container.NewWithoutLayout(b),
	}
}

// CanvasObject returns the overlay to stack above the window content.
func (l *TipLayer) CanvasObject() fyne.CanvasObject {
	return l.layer
}

// Bubble returns the bubble the layer positions.
func (l *TipLayer) Bubble() *Bubble {
	return l.bubble
}

// ViewportSize returns the layer's current size.
func (l *TipLayer) ViewportSize() model.Size {
	return toSize(l.layer.Size())
}

// RectOf returns obj's box in layer coordinates. Objects that are not on a
// canvas yet report their own position.
func (l *TipLayer) RectOf(obj fyne.CanvasObject) model.Rect {
	if obj == nil {
		return model.Rect{}
	}
	pos := obj.Position()
	if app := fyne.CurrentApp(); app != nil {
		if d := app.Driver(); d != nil && d.CanvasForObject(obj) != nil {
			pos = d.AbsolutePositionForObject(obj).Subtract(d.AbsolutePositionForObject(l.layer))
		}
	}
	return relativeRect(pos, obj.Size())
}

func (l *TipLayer) SetText(text string) {
	l.bubble.SetText(text)
}

func (l *TipLayer) Measure() model.Size {
	return toSize(l.bubble.MinSize())
}

func (l *TipLayer) Bounds() model.Rect {
	return relativeRect(l.bubble.Position(), l.bubble.Size())
}

func (l *TipLayer) SetArrow(side model.Side, offset float64) {
	l.bubble.SetArrow(side, offset)
}

func (l *TipLayer) ShowAt(pos model.Point) {
	l.bubble.Resize(l.bubble.MinSize())
	l.bubble.Move(fyne.NewPos(float32(pos.X), float32(pos.Y)))
	l.bubble.Show()
	l.layer.Refresh()
}

func (l *TipLayer) Hide() {
	l.bubble.Hide()
	l.layer.Refresh()
}

func (l *TipLayer) Visible() bool {
	return l.bubble.Visible()
}

func toSize(s fyne.Size) model.Size {
	return model.Size{Width: float64(s.Width), Height: float64(s.Height)}
}

func relativeRect(pos fyne.Position, size fyne.Size) model.Rect {
	return model.NewRect(float64(pos.X), float64(pos.Y), float64(size.Width), float64(size.Height))
}
