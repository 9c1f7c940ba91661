package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names used in the Excel report.
const (
	SheetResults    = "Results"
	SheetCandidates = "Candidates"
)

var resultHeaders = []interface{}{
	"ID", "Label", "Viewport W", "Viewport H",
	"Left", "Top", "Width", "Height", "Tip W", "Tip H",
	"Placement", "Forced", "Fits", "X", "Y", "Arrow Offset",
}

var candidateHeaders = []interface{}{
	"ID", "Label", "Priority", "Placement",
	"Overflow Top", "Overflow Bottom", "Overflow Left", "Overflow Right", "Total", "Chosen",
}

// ExportXLSX writes one row per result to a Results sheet and every scored
// candidate to a Candidates sheet. The Results sheet uses column names the
// importer accepts; re-importing a report pins each chosen placement.
func ExportXLSX(path string, results []Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no scenarios to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetResults); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetCandidates); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, SheetResults, 1, resultHeaders); err != nil {
		return err
	}
	if err := writeRow(f, SheetCandidates, 1, candidateHeaders); err != nil {
		return err
	}
	for _, sheet := range []struct {
		name string
		cols int
	}{{SheetResults, len(resultHeaders)}, {SheetCandidates, len(candidateHeaders)}} {
		last, _ := excelize.CoordinatesToCellName(sheet.cols, 1)
		if err := f.SetCellStyle(sheet.name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	candidateRow := 2
	for i, r := range results {
		s := r.Scenario
		row := []interface{}{
			s.ID, s.Label, s.Viewport.Width, s.Viewport.Height,
			s.Target.Left, s.Target.Top, s.Target.Width, s.Target.Height, s.Tooltip.Width, s.Tooltip.Height,
			string(r.Layout.Placement), r.Forced, r.Fits,
			r.Layout.Position.X, r.Layout.Position.Y, r.Layout.ArrowOffset,
		}
		if err := writeRow(f, SheetResults, i+2, row); err != nil {
			return err
		}

		for _, c := range r.Layout.Candidates {
			row := []interface{}{
				s.ID, s.Label, c.Priority, string(c.Placement),
				c.Overflow.Top, c.Overflow.Bottom, c.Overflow.Left, c.Overflow.Right, c.Total,
				c.Placement == r.Layout.Placement,
			}
			if err := writeRow(f, SheetCandidates, candidateRow, row); err != nil {
				return err
			}
			candidateRow++
		}
	}

	if err := f.SetColWidth(SheetResults, "B", "B", 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
