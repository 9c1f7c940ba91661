package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/TipPlace/internal/model"
)

// DXF layer names.
const (
	LayerViewport = "VIEWPORT"
	LayerTarget   = "TARGET"
	LayerTooltip  = "TOOLTIP"
	LayerArrow    = "ARROW"
	LayerLabel    = "LABEL"
)

// dxfSpacing separates consecutive scenarios laid out along the x axis.
const dxfSpacing = 50.0

// ExportDXF draws every result side by side, with the viewport outline, target,
// tooltip box, and arrow each on its own layer. Viewport y grows
// downward and DXF y grows upward, so each scenario is flipped about its
// viewport height.
func ExportDXF(path string, cfg model.Config, results []Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no scenarios to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerViewport, color.White},
		{LayerTarget, color.Blue},
		{LayerTooltip, color.Yellow},
		{LayerArrow, color.Red},
		{LayerLabel, color.Green},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	originX := 0.0
	for _, r := range results {
		w := dxfWriter{d: d, originX: originX, height: r.Scenario.Viewport.Height, arrowSize: cfg.ArrowSize}
		if err := w.scenario(r); err != nil {
			return fmt.Errorf("failed to draw scenario %q: %w", r.Scenario.Label, err)
		}
		originX += r.Scenario.Viewport.Width + dxfSpacing
	}

	return d.SaveAs(path)
}

// dxfWriter maps one scenario's viewport coordinates into drawing space.
type dxfWriter struct {
	d         *drawing.Drawing
	originX   float64
	height    float64
	arrowSize float64
}

func (w dxfWriter) point(p model.Point) (float64, float64) {
	return w.originX + p.X, w.height - p.Y
}

func (w dxfWriter) scenario(r Result) error {
	s := r.Scenario

	if err := w.polygon(LayerViewport, rectCorners(model.NewRect(0, 0, s.Viewport.Width, s.Viewport.Height))); err != nil {
		return err
	}
	if err := w.polygon(LayerTarget, rectCorners(s.Target)); err != nil {
		return err
	}
	if err := w.polygon(LayerTooltip, rectCorners(r.Box)); err != nil {
		return err
	}
	tri := r.Layout.Arrow(s.Tooltip, w.arrowSize)
	if err := w.polygon(LayerArrow, tri[:]); err != nil {
		return err
	}

	if err := w.d.ChangeLayer(LayerLabel); err != nil {
		return err
	}
	x, y := w.point(model.Point{X: 0, Y: -5})
	label := fmt.Sprintf("%s: %s", s.Label, r.Layout.Placement)
	if _, err := w.d.Text(label, x, y, 0, 8); err != nil {
		return err
	}
	return nil
}

// polygon draws a closed outline as individual LINE entities.
func (w dxfWriter) polygon(layer string, pts []model.Point) error {
	if err := w.d.ChangeLayer(layer); err != nil {
		return err
	}
	for i := range pts {
		x1, y1 := w.point(pts[i])
		x2, y2 := w.point(pts[(i+1)%len(pts)])
		if _, err := w.d.Line(x1, y1, 0, x2, y2, 0); err != nil {
			return err
		}
	}
	return nil
}

func rectCorners(r model.Rect) []model.Point {
	return []model.Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	}
}
