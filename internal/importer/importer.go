// Package importer provides CSV, Excel, and DXF import of placement scenarios.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TipPlace/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Scenarios []model.Scenario
	Errors    []string
	Warnings  []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A value of -1 means the column is absent.
type ColumnMapping struct {
	Label     int
	ViewportW int
	ViewportH int
	Left      int
	Top       int
	Width     int
	Height    int
	TipW      int
	TipH      int
	Placement int
}

// positionalMapping is used when the first row is not a recognizable header.
var positionalMapping = ColumnMapping{
	Label:     0,
	ViewportW: 1,
	ViewportH: 2,
	Left:      3,
	Top:       4,
	Width:     5,
	Height:    6,
	TipW:      7,
	TipH:      8,
	Placement: 9,
}

// headerAliases maps canonical column names to their accepted aliases.
// Headers are compared after lowercasing and replacing spaces and dashes
// with underscores.
var headerAliases = map[string][]string{
	"label":      {"label", "name", "target", "description", "desc"},
	"viewport_w": {"viewport_w", "viewport_width", "vw", "view_w"},
	"viewport_h": {"viewport_h", "viewport_height", "vh", "view_h"},
	"left":       {"left", "x", "target_x"},
	"top":        {"top", "y", "target_y"},
	"width":      {"width", "w", "target_w", "target_width"},
	"height":     {"height", "h", "target_h", "target_height"},
	"tip_w":      {"tip_w", "tip_width", "tooltip_w", "tooltip_width"},
	"tip_h":      {"tip_h", "tip_height", "tooltip_h", "tooltip_height"},
	"placement":  {"placement", "side", "position"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

func normalizeHeader(cell string) string {
	h := strings.ToLower(strings.TrimSpace(cell))
	h = strings.ReplaceAll(h, " ", "_")
	return strings.ReplaceAll(h, "-", "_")
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header cell was recognized.
func DetectColumns(row []string) (ColumnMapping, bool) {
	found := map[string]int{}
	for i, cell := range row {
		normalized := normalizeHeader(cell)
		for role, aliases := range headerAliases {
			if _, taken := found[role]; taken {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					found[role] = i
					break
				}
			}
		}
	}

	if len(found) == 0 {
		return positionalMapping, false
	}

	col := func(role string) int {
		if i, ok := found[role]; ok {
			return i
		}
		return -1
	}
	return ColumnMapping{
		Label:     col("label"),
		ViewportW: col("viewport_w"),
		ViewportH: col("viewport_h"),
		Left:      col("left"),
		Top:       col("top"),
		Width:     col("width"),
		Height:    col("height"),
		TipW:      col("tip_w"),
		TipH:      col("tip_h"),
		Placement: col("placement"),
	}, true
}

// missingColumns lists the required columns absent from a header mapping.
func (m ColumnMapping) missingColumns() []string {
	required := []struct {
		name string
		idx  int
	}{
		{"viewport_w", m.ViewportW},
		{"viewport_h", m.ViewportH},
		{"left", m.Left},
		{"top", m.Top},
		{"width", m.Width},
		{"height", m.Height},
		{"tip_w", m.TipW},
		{"tip_h", m.TipH},
	}
	var missing []string
	for _, r := range required {
		if r.idx == -1 {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber reads a required numeric cell. Negative values are rejected;
// positive additionally rejects zero.
func parseNumber(row []string, idx int, name, rowLabel string, positive bool) (float64, string) {
	raw := getCell(row, idx)
	if raw == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, raw)
	}
	if v < 0 || (positive && v == 0) {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, name)
	}
	return v, ""
}

// parseRow extracts a Scenario from a row using the given column mapping.
// Returns the scenario, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (model.Scenario, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Scenario %d", count+1)
	}

	fields := []struct {
		idx      int
		name     string
		positive bool
	}{
		{mapping.ViewportW, "viewport width", true},
		{mapping.ViewportH, "viewport height", true},
		{mapping.Left, "left", false},
		{mapping.Top, "top", false},
		{mapping.Width, "width", false},
		{mapping.Height, "height", false},
		{mapping.TipW, "tooltip width", false},
		{mapping.TipH, "tooltip height", false},
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, errMsg := parseNumber(row, f.idx, f.name, rowLabel, f.positive)
		if errMsg != "" {
			return model.Scenario{}, errMsg, ""
		}
		values[i] = v
	}

	s := model.NewScenario(label,
		model.Size{Width: values[0], Height: values[1]},
		model.NewRect(values[2], values[3], values[4], values[5]),
		model.Size{Width: values[6], Height: values[7]})

	var warning string
	if raw := getCell(row, mapping.Placement); raw != "" {
		if p, err := model.ParsePlacement(raw); err == nil {
			s.Placement = p
		} else {
			warning = fmt.Sprintf("%s: Unknown placement '%s', using automatic placement", rowLabel, raw)
		}
	}

	return s, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports scenarios from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports scenarios from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports scenarios from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if missing := mapping.missingColumns(); len(missing) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		// An unrecognized header still has a non-numeric viewport column.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		s, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Scenarios))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Scenarios = append(result.Scenarios, s)
	}

	return result
}
