package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/TipPlace/internal/model"
)

// rgb represents a fill or stroke color.
type rgb struct {
	R, G, B int
}

// Report colors.
var (
	colorViewport = rgb{R: 245, G: 245, B: 245}
	colorTarget   = rgb{R: 33, G: 150, B: 243}
	colorTooltip  = rgb{R: 255, G: 235, B: 59}
	colorFits     = rgb{R: 200, G: 230, B: 201}
	colorOverflow = rgb{R: 255, G: 205, B: 210}
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	tableWidth   = 95.0
	qrSize       = 28.0
)

// ExportPDF writes a report with one page per evaluated scenario, showing the
// viewport, target, and chosen tooltip box, followed by a summary page.
// Each scenario page carries a QR code encoding the scenario as JSON.
func ExportPDF(path string, cfg model.Config, results []Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no scenarios to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, r := range results {
		pdf.AddPage()
		if err := renderScenarioPage(pdf, cfg, r, i+1); err != nil {
			return fmt.Errorf("failed to render scenario %q: %w", r.Scenario.Label, err)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, cfg, results)

	return pdf.OutputFileAndClose(path)
}

// renderScenarioPage draws a single scenario on the current PDF page.
func renderScenarioPage(pdf *fpdf.Fpdf, cfg model.Config, r Result, num int) error {
	s := r.Scenario

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Scenario %d: %s (viewport %.0f x %.0f)", num, s.Label, s.Viewport.Width, s.Viewport.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-qrSize, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Placement: %s | Fits: %s | Position: (%.1f, %.1f) | Arrow offset: %.1f",
		placementLabel(r), yesNo(r.Fits), r.Layout.Position.X, r.Layout.Position.Y, r.Layout.ArrowOffset)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-qrSize, 5, stats, "", 0, "L", false, 0, "")

	if err := drawScenarioQR(pdf, s, num, pageWidth-marginRight-qrSize, marginTop-5); err != nil {
		return err
	}

	// Drawing area on the left, candidate table on the right
	drawWidth := pageWidth - marginLeft - marginRight - tableWidth - 10
	drawHeight := pageHeight - drawAreaTop - marginBottom
	scale := 1.0
	if s.Viewport.Width > 0 && s.Viewport.Height > 0 {
		scale = math.Min(drawWidth/s.Viewport.Width, drawHeight/s.Viewport.Height)
	}
	offsetX := marginLeft
	offsetY := drawAreaTop

	drawViewport(pdf, cfg, s.Viewport, scale, offsetX, offsetY)
	drawBox(pdf, s.Target, colorTarget, scale, offsetX, offsetY)
	drawBox(pdf, r.Box, colorTooltip, scale, offsetX, offsetY)
	drawArrow(pdf, r.Layout.Arrow(s.Tooltip, cfg.ArrowSize), scale, offsetX, offsetY)

	drawCandidateTable(pdf, r, pageWidth-marginRight-tableWidth, drawAreaTop)
	return nil
}

// drawViewport renders the viewport and its padded inner edge.
func drawViewport(pdf *fpdf.Fpdf, cfg model.Config, viewport model.Size, scale, offsetX, offsetY float64) {
	pdf.SetFillColor(colorViewport.R, colorViewport.G, colorViewport.B)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, viewport.Width*scale, viewport.Height*scale, "FD")

	pad := cfg.ViewportPad
	if pad > 0 && viewport.Width > 2*pad && viewport.Height > 2*pad {
		pdf.SetDrawColor(160, 160, 160)
		pdf.SetLineWidth(0.2)
		pdf.SetDashPattern([]float64{1.5, 1}, 0)
		pdf.Rect(offsetX+pad*scale, offsetY+pad*scale, (viewport.Width-2*pad)*scale, (viewport.Height-2*pad)*scale, "D")
		pdf.SetDashPattern([]float64{}, 0)
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	label := fmt.Sprintf("%.0f x %.0f", viewport.Width, viewport.Height)
	labelW := pdf.GetStringWidth(label)
	pdf.SetXY(offsetX+(viewport.Width*scale-labelW)/2, offsetY+viewport.Height*scale+1)
	pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawBox(pdf *fpdf.Fpdf, r model.Rect, col rgb, scale, offsetX, offsetY float64) {
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	pdf.Rect(offsetX+r.Left*scale, offsetY+r.Top*scale, math.Max(r.Width*scale, 0.3), math.Max(r.Height*scale, 0.3), "FD")
}

func drawArrow(pdf *fpdf.Fpdf, tri [3]model.Point, scale, offsetX, offsetY float64) {
	points := make([]fpdf.PointType, len(tri))
	for i, p := range tri {
		points[i] = fpdf.PointType{X: offsetX + p.X*scale, Y: offsetY + p.Y*scale}
	}
	pdf.SetFillColor(colorTooltip.R, colorTooltip.G, colorTooltip.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	pdf.Polygon(points, "FD")
}

// drawCandidateTable lists every scored candidate in priority order.
func drawCandidateTable(pdf *fpdf.Fpdf, r Result, x, y float64) {
	colWidths := []float64{30, 13, 13, 13, 13, 13}
	headers := []string{"Candidate", "Top", "Bottom", "Left", "Right", "Total"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	xPos := x
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for _, c := range r.Layout.Candidates {
		col := colorOverflow
		if c.Fits() {
			col = colorFits
		}
		name := string(c.Placement)
		if c.Placement == r.Layout.Placement {
			name = "> " + name
		}
		rowData := []string{
			name,
			fmt.Sprintf("%.1f", c.Overflow.Top),
			fmt.Sprintf("%.1f", c.Overflow.Bottom),
			fmt.Sprintf("%.1f", c.Overflow.Left),
			fmt.Sprintf("%.1f", c.Overflow.Right),
			fmt.Sprintf("%.1f", c.Total),
		}

		xPos = x
		for j, cell := range rowData {
			if j == 0 {
				pdf.SetFillColor(col.R, col.G, col.B)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
}

// drawScenarioQR embeds a QR code of the scenario JSON at the given position.
func drawScenarioQR(pdf *fpdf.Fpdf, s model.Scenario, num int, x, y float64) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", num, s.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// renderSummaryPage draws the final page with per-scenario results and the
// spacing configuration used.
func renderSummaryPage(pdf *fpdf.Fpdf, cfg model.Config, results []Result) {
	summary := Summarize(results)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Placement Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Scenarios", fmt.Sprintf("%d", summary.Total)},
		{"Fitting", fmt.Sprintf("%d", summary.Fitting)},
		{"Least-overflow fallbacks", fmt.Sprintf("%d", summary.Fallbacks)},
		{"Gap / Viewport pad", fmt.Sprintf("%.1f / %.1f", cfg.Gap, cfg.ViewportPad)},
		{"Min arrow pad / Arrow size", fmt.Sprintf("%.1f / %.1f", cfg.MinArrowPad, cfg.ArrowSize)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	colWidths := []float64{15, 70, 35, 40, 35, 30, 35}
	headers := []string{"#", "Scenario", "Viewport", "Target", "Placement", "Fits", "Position"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, r := range results {
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
		}
		s := r.Scenario
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			s.Label,
			fmt.Sprintf("%.0f x %.0f", s.Viewport.Width, s.Viewport.Height),
			fmt.Sprintf("%.0f,%.0f %.0fx%.0f", s.Target.Left, s.Target.Top, s.Target.Width, s.Target.Height),
			placementLabel(r),
			yesNo(r.Fits),
			fmt.Sprintf("%.1f, %.1f", r.Layout.Position.X, r.Layout.Position.Y),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by TipPlace - Tooltip Placement Report", "", 0, "C", false, 0, "")
}

func placementLabel(r Result) string {
	if r.Forced {
		return string(r.Layout.Placement) + " (forced)"
	}
	return string(r.Layout.Placement)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
