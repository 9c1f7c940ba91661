package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TipPlace/internal/engine"
	"github.com/piwi3910/TipPlace/internal/model"
	"github.com/piwi3910/TipPlace/internal/tooltip"
	"github.com/piwi3910/TipPlace/internal/ui/widgets"
)

// boardSize is larger than the default window so the playground scrolls.
var boardSize = fyne.NewSize(1100, 800)

// viewportLayout stacks its objects at full size and reports every size change.
type viewportLayout struct {
	last     fyne.Size
	onResize func()
}

func (l *viewportLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
	if size != l.last {
		l.last = size
		if l.onResize != nil {
			l.onResize()
		}
	}
}

func (l *viewportLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	size := fyne.NewSize(0, 0)
	for _, o := range objects {
		size = size.Max(o.MinSize())
	}
	return size
}

// playground is the interactive demo: annotated buttons on every edge and
// corner of a scrollable board, all sharing one tooltip controller.
type playground struct {
	ctl    *tooltip.Controller
	layer  *widgets.TipLayer
	anchor *widgets.AnchorLayer
	center *widgets.Annotated
	root   fyne.CanvasObject
}

func (a *App) buildPlayground() *playground {
	eng := engine.New(a.cfg)
	p := &playground{
		layer: widgets.NewTipLayer(a.cfg.ArrowSize),
	}
	p.anchor = widgets.NewAnchorLayer(p.layer, eng)
	p.ctl = tooltip.New(eng, p.layer.ViewportSize, p.layer,
		tooltip.WithAnchored(p.anchor),
		tooltip.WithLogger(a.log),
	)
	an := widgets.NewAnnotator(p.layer, p.ctl)

	board := p.buildBoard(an)
	scroll := container.NewScroll(container.NewStack(board, p.anchor.CanvasObject()))
	scroll.OnScrolled = func(fyne.Position) { p.ctl.ViewportChanged() }

	p.root = container.New(&viewportLayout{onResize: p.ctl.ViewportChanged}, scroll, p.layer.CanvasObject())
	return p
}

func (p *playground) buildBoard(an *widgets.Annotator) fyne.CanvasObject {
	corner := func(label string) fyne.CanvasObject {
		return an.Button(label, fmt.Sprintf("%s corner: the tooltip flips to stay on screen", label), nil)
	}
	edge := func(label string) fyne.CanvasObject {
		return an.Button(label, fmt.Sprintf("Anchored to the %s edge", label), nil)
	}

	top := container.NewHBox(corner("Top left"), layout.NewSpacer(), edge("top"), layout.NewSpacer(), corner("Top right"))
	bottom := container.NewHBox(corner("Bottom left"), layout.NewSpacer(), edge("bottom"), layout.NewSpacer(), corner("Bottom right"))
	left := container.NewVBox(layout.NewSpacer(), edge("left"), layout.NewSpacer())
	right := container.NewVBox(layout.NewSpacer(), edge("right"), layout.NewSpacer())

	// Nested targets: a silent child keeps the card's tooltip, a labelled
	// child takes over.
	silent := an.Button("Silent child", "", nil)
	talking := an.Button("Labelled child", "A nested target with its own tooltip", nil)
	card := widget.NewCard("Nested targets", "Hover the card, then its buttons",
		container.NewVBox(silent, talking))
	p.center = an.Wrap(card, "The card's own tooltip")
	silent.SetParent(p.center)
	talking.SetParent(p.center)

	options := append([]string{"auto"}, model.PlacementOptions()...)
	forced := widget.NewSelect(options, func(selected string) {
		placement, err := model.ParsePlacement(selected)
		if err != nil {
			placement = ""
		}
		p.center.SetPlacement(placement)
	})
	forced.SetSelected("auto")

	center := container.NewCenter(container.NewVBox(
		p.center,
		container.NewHBox(widget.NewLabel("Card placement"), forced),
	))

	spacer := canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	spacer.SetMinSize(boardSize)

	return container.NewStack(spacer, container.NewBorder(top, bottom, left, right, center))
}

// close hides the tooltip before the playground is discarded.
func (p *playground) close() {
	p.ctl.Hide()
}
