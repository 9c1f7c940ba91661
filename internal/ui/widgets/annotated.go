package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"github.com/piwi3910/TipPlace/internal/model"
	"github.com/piwi3910/TipPlace/internal/tooltip"
)

var (
	_ desktop.Hoverable = (*Annotated)(nil)
	_ desktop.Hoverable = (*AnnotatedButton)(nil)
	_ tooltip.Target    = (*Annotated)(nil)
	_ tooltip.Target    = (*AnnotatedButton)(nil)
)

// annotatedTarget exposes the annotation behind a widget.
type annotatedTarget interface {
	annotation() *Annotation
}

// Annotation is the tooltip state shared by every annotated widget: its text,
// an optional forced placement, and the annotated parent it is nested in.
type Annotation struct {
	id        string
	text      string
	placement model.Placement
	parent    *Annotation

	frame *TipLayer
	hover *Hover
	self  fyne.CanvasObject
}

func newAnnotation(frame *TipLayer, hover *Hover, text string) Annotation {
	return Annotation{
		id:    uuid.New().String()[:8],
		text:  text,
		frame: frame,
		hover: hover,
	}
}

func (a *Annotation) annotation() *Annotation { return a }

func (a *Annotation) ID() string { return a.id }

// Bounds returns the widget's box in the frame's coordinates.
func (a *Annotation) Bounds() model.Rect {
	return a.frame.RectOf(a.self)
}

func (a *Annotation) TooltipText() string { return a.text }

func (a *Annotation) Placement() (model.Placement, bool) {
	return a.placement, a.placement.Valid()
}

// Contains reports whether other is this widget or nested inside it.
func (a *Annotation) Contains(other tooltip.Target) bool {
	if other == nil {
		return false
	}
	if other.ID() == a.id {
		return true
	}
	o, ok := other.(annotatedTarget)
	if !ok {
		return false
	}
	for p := o.annotation().parent; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

// CanvasObject returns the annotated widget.
func (a *Annotation) CanvasObject() fyne.CanvasObject { return a.self }

// SetTooltip replaces the tooltip text. It takes effect on the next hover.
func (a *Annotation) SetTooltip(text string) { a.text = text }

// SetPlacement forces a placement. An empty placement restores automatic choice.
func (a *Annotation) SetPlacement(p model.Placement) { a.placement = p }

// SetParent records the annotated widget this one is nested in.
func (a *Annotation) SetParent(p annotatedTarget) {
	if p == nil {
		a.parent = nil
		return
	}
	a.parent = p.annotation()
}

// Annotator creates annotated widgets that share one tooltip.
type Annotator struct {
	frame *TipLayer
	hover *Hover
}

// NewAnnotator creates widgets measured against frame and reported to t.
func NewAnnotator(frame *TipLayer, t Tracker) *Annotator {
	return &Annotator{frame: frame, hover: NewHover(t)}
}

// Annotated wraps any content with a tooltip.
type Annotated struct {
	widget.BaseWidget
	Annotation

	content fyne.CanvasObject
}

// Wrap annotates content with text.
func (an *Annotator) Wrap(content fyne.CanvasObject, text string) *Annotated {
	w := &Annotated{Annotation: newAnnotation(an.frame, an.hover, text), content: content}
	w.self = w
	w.ExtendBaseWidget(w)
	return w
}

func (w *Annotated) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.content)
}

func (w *Annotated) MouseIn(_ *desktop.MouseEvent)    { w.hover.in(w) }
func (w *Annotated) MouseMoved(_ *desktop.MouseEvent) { w.hover.moved() }
func (w *Annotated) MouseOut()                        { w.hover.out() }

// AnnotatedButton is a button with a tooltip.
type AnnotatedButton struct {
	widget.Button
	Annotation
}

// Button creates an annotated button.
func (an *Annotator) Button(label, text string, tapped func()) *AnnotatedButton {
	b := &AnnotatedButton{Annotation: newAnnotation(an.frame, an.hover, text)}
	b.Button.Text = label
	b.Button.OnTapped = tapped
	b.self = b
	b.ExtendBaseWidget(b)
	return b
}

func (b *AnnotatedButton) MouseIn(e *desktop.MouseEvent) {
	b.Button.MouseIn(e)
	b.hover.in(b)
}

func (b *AnnotatedButton) MouseMoved(e *desktop.MouseEvent) {
	b.Button.MouseMoved(e)
	b.hover.moved()
}

func (b *AnnotatedButton) MouseOut() {
	b.Button.MouseOut()
	b.hover.out()
}
