package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TipPlace/internal/model"
)

// Bubble is the tooltip body: a rounded background, the tooltip text, and an
// arrow drawn on the edge that faces the target.
type Bubble struct {
	widget.BaseWidget

	text      string
	side      model.Side
	offset    float64
	arrowSize float64
}

// NewBubble creates an empty bubble whose arrow extends arrowSize past its edge.
func NewBubble(arrowSize float64) *Bubble {
	b := &Bubble{side: model.SideTop, arrowSize: arrowSize}
	b.ExtendBaseWidget(b)
	return b
}

// SetText replaces the tooltip text.
func (b *Bubble) SetText(text string) {
	b.text = text
	b.Refresh()
}

// Text returns the current tooltip text.
func (b *Bubble) Text() string {
	return b.text
}

// SetArrow moves the arrow to side, offset along the facing edge.
func (b *Bubble) SetArrow(side model.Side, offset float64) {
	b.side = side
	b.offset = offset
	b.Refresh()
}

// Arrow returns the arrow triangle in the bubble's own coordinates.
func (b *Bubble) Arrow() [3]model.Point {
	size := b.Size()
	layout := model.Layout{Side: b.side, ArrowOffset: b.offset}
	return layout.Arrow(model.Size{Width: float64(size.Width), Height: float64(size.Height)}, b.arrowSize)
}

func (b *Bubble) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	bg.CornerRadius = theme.Padding()
	bg.StrokeColor = theme.Color(theme.ColorNameSeparator)
	bg.StrokeWidth = 1

	label := widget.NewLabel(b.text)
	label.Wrapping = fyne.TextWrapOff

	r := &bubbleRenderer{
		b:     b,
		bg:    bg,
		label: label,
		left:  canvas.NewLine(theme.Color(theme.ColorNameForeground)),
		right: canvas.NewLine(theme.Color(theme.ColorNameForeground)),
	}
	r.left.StrokeWidth = 1.5
	r.right.StrokeWidth = 1.5
	return r
}

type bubbleRenderer struct {
	b     *Bubble
	bg    *canvas.Rectangle
	label *widget.Label
	left  *canvas.Line
	right *canvas.Line
}

func (r *bubbleRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.label.Move(fyne.NewPos(0, 0))
	r.label.Resize(size)

	tri := r.b.Arrow()
	base0 := fyne.NewPos(float32(tri[0].X), float32(tri[0].Y))
	base1 := fyne.NewPos(float32(tri[1].X), float32(tri[1].Y))
	apex := fyne.NewPos(float32(tri[2].X), float32(tri[2].Y))
	r.left.Position1, r.left.Position2 = base0, apex
	r.right.Position1, r.right.Position2 = base1, apex
}

func (r *bubbleRenderer) MinSize() fyne.Size {
	return r.label.MinSize()
}

func (r *bubbleRenderer) Refresh() {
	r.bg.FillColor = theme.Color(theme.ColorNameOverlayBackground)
	r.bg.StrokeColor = theme.Color(theme.ColorNameSeparator)
	r.left.StrokeColor = theme.Color(theme.ColorNameForeground)
	r.right.StrokeColor = theme.Color(theme.ColorNameForeground)
	if r.label.Text != r.b.text {
		r.label.SetText(r.b.text)
	}
	r.Layout(r.b.Size())
	r.bg.Refresh()
	r.left.Refresh()
	r.right.Refresh()
}

func (r *bubbleRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.label, r.left, r.right}
}

func (r *bubbleRenderer) Destroy() {}
