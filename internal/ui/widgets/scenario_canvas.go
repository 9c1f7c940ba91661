package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TipPlace/internal/export"
	"github.com/piwi3910/TipPlace/internal/model"
)

var (
	viewportFill   = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	viewportBorder = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	paddedBorder   = color.NRGBA{R: 160, G: 160, B: 160, A: 160}
	targetFill     = color.NRGBA{R: 33, G: 150, B: 243, A: 200}
	tooltipFill    = color.NRGBA{R: 255, G: 235, B: 59, A: 220}
	fallbackFill   = color.NRGBA{R: 255, G: 152, B: 0, A: 220}
	arrowColor     = color.NRGBA{R: 244, G: 67, B: 54, A: 255}
	candidateLine  = color.NRGBA{R: 156, G: 39, B: 176, A: 90}
)

// ScenarioCanvas draws one evaluated scenario: the viewport with its padded
// area, the target, the chosen tooltip box with its arrow, and faint outlines
// of the rejected candidates.
type ScenarioCanvas struct {
	widget.BaseWidget
	res       export.Result
	cfg       model.Config
	maxWidth  float32
	maxHeight float32
}

func NewScenarioCanvas(res export.Result, cfg model.Config, maxW, maxH float32) *ScenarioCanvas {
	sc := &ScenarioCanvas{
		res:       res,
		cfg:       cfg,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	sc.ExtendBaseWidget(sc)
	return sc
}

func (sc *ScenarioCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newScenarioCanvasRenderer(sc)
}

// scale fits the viewport inside the canvas bounds.
func (sc *ScenarioCanvas) scale() float32 {
	vw := float32(sc.res.Scenario.Viewport.Width)
	vh := float32(sc.res.Scenario.Viewport.Height)
	if vw <= 0 || vh <= 0 {
		return 1
	}
	s := sc.maxWidth / vw
	if sy := sc.maxHeight / vh; sy < s {
		s = sy
	}
	return s
}

type scenarioCanvasRenderer struct {
	sc      *ScenarioCanvas
	objects []fyne.CanvasObject
}

func newScenarioCanvasRenderer(sc *ScenarioCanvas) *scenarioCanvasRenderer {
	r := &scenarioCanvasRenderer{sc: sc}
	r.rebuild()
	return r
}

func (r *scenarioCanvasRenderer) rebuild() {
	r.objects = nil

	s := r.sc.res.Scenario
	scale := r.sc.scale()
	pad := r.sc.cfg.ViewportPad

	r.rect(model.NewRect(0, 0, s.Viewport.Width, s.Viewport.Height), scale, viewportFill, viewportBorder, 2)
	r.rect(model.NewRect(pad, pad, s.Viewport.Width-2*pad, s.Viewport.Height-2*pad), scale, color.Transparent, paddedBorder, 1)

	for _, c := range r.sc.res.Layout.Candidates {
		if c.Placement == r.sc.res.Layout.Placement {
			continue
		}
		r.rect(c.Box, scale, color.Transparent, candidateLine, 1)
	}

	r.rect(s.Target, scale, targetFill, color.NRGBA{R: 30, G: 30, B: 30, A: 255}, 1)

	fill := tooltipFill
	if !r.sc.res.Fits {
		fill = fallbackFill
	}
	r.rect(r.sc.res.Box, scale, fill, color.NRGBA{R: 30, G: 30, B: 30, A: 255}, 1)

	tri := r.sc.res.Layout.Arrow(s.Tooltip, r.sc.cfg.ArrowSize)
	for i := range tri {
		a, b := tri[i], tri[(i+1)%len(tri)]
		line := canvas.NewLine(arrowColor)
		line.StrokeWidth = 2
		line.Position1 = fyne.NewPos(float32(a.X)*scale, float32(a.Y)*scale)
		line.Position2 = fyne.NewPos(float32(b.X)*scale, float32(b.Y)*scale)
		r.objects = append(r.objects, line)
	}

	// Label (only if big enough)
	if float32(s.Target.Width)*scale > 30 && float32(s.Target.Height)*scale > 12 {
		label := canvas.NewText(s.Label, color.White)
		label.TextSize = 10
		label.Move(fyne.NewPos(float32(s.Target.Left)*scale+3, float32(s.Target.Top)*scale+1))
		r.objects = append(r.objects, label)
	}
}

func (r *scenarioCanvasRenderer) rect(box model.Rect, scale float32, fill, stroke color.Color, width float32) {
	rect := canvas.NewRectangle(fill)
	rect.StrokeColor = stroke
	rect.StrokeWidth = width
	rect.Resize(fyne.NewSize(float32(box.Width)*scale, float32(box.Height)*scale))
	rect.Move(fyne.NewPos(float32(box.Left)*scale, float32(box.Top)*scale))
	r.objects = append(r.objects, rect)
}

func (r *scenarioCanvasRenderer) Layout(size fyne.Size)        {}
func (r *scenarioCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *scenarioCanvasRenderer) Destroy()                     {}
func (r *scenarioCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *scenarioCanvasRenderer) MinSize() fyne.Size {
	scale := r.sc.scale()
	return fyne.NewSize(float32(r.sc.res.Scenario.Viewport.Width)*scale, float32(r.sc.res.Scenario.Viewport.Height)*scale)
}

// RenderScenarioResults creates a scrollable container of all evaluated scenarios.
func RenderScenarioResults(results []export.Result, cfg model.Config) fyne.CanvasObject {
	if len(results) == 0 {
		return widget.NewLabel("No scenarios yet. Import a CSV, Excel, or DXF file to evaluate placements.")
	}

	var items []fyne.CanvasObject

	for i, res := range results {
		s := res.Scenario
		header := widget.NewLabel(fmt.Sprintf(
			"Scenario %d: %s (viewport %.0f x %.0f) - %s at (%.0f, %.0f)",
			i+1, s.Label, s.Viewport.Width, s.Viewport.Height,
			res.Layout.Placement, res.Layout.Position.X, res.Layout.Position.Y,
		))
		header.TextStyle = fyne.TextStyle{Bold: true}

		items = append(items, header, NewScenarioCanvas(res, cfg, 600, 400))

		if !res.Fits {
			warning := widget.NewLabel("No placement fits the padded viewport; least overflow used.")
			warning.Importance = widget.WarningImportance
			items = append(items, warning)
		}
		items = append(items, widget.NewSeparator())
	}

	summary := export.Summarize(results)
	breakdown := buildPlacementBreakdown(summary)
	if len(breakdown) > 1 {
		breakdownHeader := widget.NewLabel("Placement Breakdown:")
		breakdownHeader.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, breakdownHeader)
		for _, line := range breakdown {
			items = append(items, widget.NewLabel(line))
		}
	}

	total := widget.NewLabel(fmt.Sprintf(
		"Total: %d scenarios, %d fit, %d fallbacks",
		summary.Total, summary.Fitting, summary.Fallbacks,
	))
	total.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, total)

	return container.NewVScroll(container.NewVBox(items...))
}

// buildPlacementBreakdown lists how often each placement was chosen, in
// priority order.
func buildPlacementBreakdown(s export.Summary) []string {
	var lines []string
	for _, p := range model.PriorityOrder {
		n := s.ByPlacement[p]
		if n == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s: %d scenario(s)", p, n))
	}
	return lines
}
