package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/TipPlace/internal/engine"
	"github.com/piwi3910/TipPlace/internal/importer"
	"github.com/piwi3910/TipPlace/internal/model"
)

// buildTestScenarios returns one comfortable scenario, one forced placement,
// and one where nothing fits.
func buildTestScenarios() []model.Scenario {
	tip := model.Size{Width: 80, Height: 30}
	open := model.NewScenario("open", model.Size{Width: 1000, Height: 800}, model.NewRect(100, 100, 50, 20), tip)

	forced := model.NewScenario("forced", model.Size{Width: 1000, Height: 800}, model.NewRect(500, 400, 40, 20), tip)
	forced.Placement = model.PlacementRight

	cramped := model.NewScenario("cramped", model.Size{Width: 100, Height: 50}, model.NewRect(40, 10, 20, 20),
		model.Size{Width: 200, Height: 100})

	return []model.Scenario{open, forced, cramped}
}

func evaluateTestScenarios() []Result {
	return Evaluate(engine.New(model.DefaultConfig()), buildTestScenarios())
}

func TestEvaluate(t *testing.T) {
	results := evaluateTestScenarios()
	require.Len(t, results, 3)

	open := results[0]
	assert.Equal(t, model.PlacementTop, open.Layout.Placement)
	assert.True(t, open.Fits)
	assert.False(t, open.Forced)
	assert.Equal(t, model.NewRect(85, 62, 80, 30), open.Box)

	forced := results[1]
	assert.Equal(t, model.PlacementRight, forced.Layout.Placement)
	assert.True(t, forced.Forced)
	assert.True(t, forced.Fits)

	cramped := results[2]
	assert.False(t, cramped.Fits)
	assert.Len(t, cramped.Layout.Candidates, len(model.PriorityOrder))
}

func TestSummarize(t *testing.T) {
	summary := Summarize(evaluateTestScenarios())

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Fitting)
	assert.Equal(t, 1, summary.Fallbacks)
	assert.Equal(t, 1, summary.ByPlacement[model.PlacementTop])
	assert.Equal(t, 1, summary.ByPlacement[model.PlacementRight])
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")

	err := ExportPDF(path, model.DefaultConfig(), evaluateTestScenarios())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Greater(t, len(data), 1000)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportPDF_EmptyResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.DefaultConfig(), nil)
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written for empty input")
}

func TestExportXLSX_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	results := evaluateTestScenarios()

	require.NoError(t, ExportXLSX(path, results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetResults)
	require.NoError(t, err)
	require.Len(t, rows, len(results)+1)
	assert.Equal(t, "Label", rows[0][1])
	assert.Equal(t, "open", rows[1][1])
	assert.Equal(t, "top", rows[1][10])

	candidates, err := f.GetRows(SheetCandidates)
	require.NoError(t, err)
	assert.Len(t, candidates, len(results)*len(model.PriorityOrder)+1)
}

func TestExportXLSX_ReimportsAsScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	results := evaluateTestScenarios()
	require.NoError(t, ExportXLSX(path, results))

	imported := importer.ImportExcel(path)
	require.Empty(t, imported.Errors)
	require.Len(t, imported.Scenarios, len(results))

	for i, s := range imported.Scenarios {
		assert.Equal(t, results[i].Scenario.Label, s.Label)
		assert.Equal(t, results[i].Scenario.Target, s.Target)
		assert.Equal(t, results[i].Layout.Placement, s.Placement)
	}
}

func TestExportXLSX_EmptyResults(t *testing.T) {
	assert.Error(t, ExportXLSX(filepath.Join(t.TempDir(), "empty.xlsx"), nil))
}

func TestExportDXF_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.dxf")
	results := evaluateTestScenarios()

	require.NoError(t, ExportDXF(path, model.DefaultConfig(), results))

	d, err := dxf.Open(path)
	require.NoError(t, err)

	lines := 0
	for _, e := range d.Entities() {
		if _, ok := e.(*entity.Line); ok {
			lines++
		}
	}
	// viewport, target, and tooltip rectangles plus the arrow triangle
	assert.Equal(t, len(results)*(4+4+4+3), lines)
}

func TestExportDXF_EmptyResults(t *testing.T) {
	assert.Error(t, ExportDXF(filepath.Join(t.TempDir(), "empty.dxf"), model.DefaultConfig(), nil))
}
