package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TipPlace/internal/engine"
	"github.com/piwi3910/TipPlace/internal/export"
	scenarioimporter "github.com/piwi3910/TipPlace/internal/importer"
	"github.com/piwi3910/TipPlace/internal/model"
	"github.com/piwi3910/TipPlace/internal/project"
	"github.com/piwi3910/TipPlace/internal/ui/widgets"
)

// maxRecentReports bounds Config.RecentReports.
const maxRecentReports = 10

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	cfg     model.Config
	cfgPath string
	log     *slog.Logger
	theme   *TipPlaceTheme
	history *History

	setName   string
	scenarios []model.Scenario
	results   []export.Result

	tabs *container.AppTabs
	play *playground

	// UI references for dynamic updates
	playgroundContainer *fyne.Container
	settingsContainer   *fyne.Container
	resultContainer     *fyne.Container
	modeLabel           *widget.Label
}

// NewApp creates the application state. cfgPath is where settings are saved.
func NewApp(window fyne.Window, cfg model.Config, cfgPath string, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		window:  window,
		cfg:     cfg,
		cfgPath: cfgPath,
		log:     logger,
		theme:   NewTipPlaceTheme(cfg.Theme),
		history: NewHistory(),
		setName: "Untitled",
	}
}

// Theme returns the application theme; the caller installs it on the app.
func (a *App) Theme() fyne.Theme {
	return a.theme
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Scenarios...", func() {
			a.loadScenarios()
		}),
		fyne.NewMenuItem("Save Scenarios...", func() {
			a.saveScenarios()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Scenarios from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Scenarios from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItem("Import Targets from DXF...", func() {
			a.importDXF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", func() {
			a.exportReport("pdf")
		}),
		fyne.NewMenuItem("Export Excel Report...", func() {
			a.exportReport("xlsx")
		}),
		fyne.NewMenuItem("Export DXF Drawing...", func() {
			a.exportReport("dxf")
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Back Up All Data...", func() {
			a.backupData()
		}),
		fyne.NewMenuItem("Restore All Data...", func() {
			a.restoreData()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Scenarios", func() {
			a.setScenarios(nil, "Clear Scenarios")
		}),
	)

	// Tools Menu
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Evaluate Scenarios", func() {
			a.evaluate()
			a.tabs.SelectIndex(1) // Switch to Scenarios tab
		}),
		fyne.NewMenuItem("Toggle Debug Tooltip", func() {
			a.toggleDebug()
		}),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About TipPlace",
		"TipPlace - tooltip placement playground\n\n"+
			"Hover the buttons to see where the shared tooltip lands,\n"+
			"and evaluate imported scenarios into PDF, Excel, or DXF reports.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.playgroundContainer = container.NewStack()
	a.settingsContainer = container.NewStack()
	a.resultContainer = container.NewStack()
	a.modeLabel = widget.NewLabel("")

	playgroundTab := container.NewTabItem("Playground", container.NewBorder(
		a.buildToolbar(), nil, nil, nil, a.playgroundContainer,
	))
	scenariosTab := container.NewTabItem("Scenarios", a.resultContainer)
	settingsTab := container.NewTabItem("Settings", a.settingsContainer)

	a.tabs = container.NewAppTabs(playgroundTab, scenariosTab, settingsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.tabs.OnSelected = func(*container.TabItem) {
		if a.play != nil {
			a.play.ctl.Hide()
		}
	}

	a.refreshAll()
	return a.tabs
}

// buildToolbar uses library tooltips so the toolbar never competes with the
// tooltip under test.
func (a *App) buildToolbar() fyne.CanvasObject {
	return container.NewHBox(
		newIconButtonWithTooltip(theme.VisibilityIcon(), "Keep the tooltip after the pointer leaves", a.toggleDebug),
		newIconButtonWithTooltip(theme.MediaPlayIcon(), "Evaluate scenarios", func() {
			a.evaluate()
			a.tabs.SelectIndex(1)
		}),
		newIconButtonWithTooltip(theme.DocumentPrintIcon(), "Export PDF report", func() {
			a.exportReport("pdf")
		}),
		newIconButtonWithTooltip(theme.SettingsIcon(), "Settings", func() {
			a.tabs.SelectIndex(2)
		}),
		layout.NewSpacer(),
		a.modeLabel,
	)
}

// refreshAll rebuilds everything that depends on the configuration.
func (a *App) refreshAll() {
	a.theme.SetVariantName(a.cfg.Theme)
	if app := fyne.CurrentApp(); app != nil {
		app.Settings().SetTheme(a.theme)
	}
	a.refreshPlayground()
	a.refreshSettings()
	a.evaluate()
}

func (a *App) refreshPlayground() {
	if a.play != nil {
		a.play.close()
	}
	a.play = a.buildPlayground()
	a.playgroundContainer.Objects = []fyne.CanvasObject{a.play.root}
	a.playgroundContainer.Refresh()
	a.updateModeLabel()
}

func (a *App) updateModeLabel() {
	text := fmt.Sprintf("Positioning: %s", a.play.ctl.Mode())
	if a.cfg.Debug {
		text += " (debug)"
	}
	a.modeLabel.SetText(text)
}

func (a *App) refreshSettings() {
	a.settingsContainer.Objects = []fyne.CanvasObject{a.buildSettingsPanel()}
	a.settingsContainer.Refresh()
}

func (a *App) refreshResults() {
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderScenarioResults(a.results, a.cfg))
	a.resultContainer.Refresh()
}

// ─── State changes ─────────────────────────────────────────

func (a *App) snapshot(label string) Snapshot {
	return MakeSnapshot(a.cfg, a.scenarios, label)
}

// applyConfig records the current state for undo, then switches to cfg.
func (a *App) applyConfig(cfg model.Config, label string) {
	a.history.Push(a.snapshot(label))
	a.cfg = copyConfig(cfg)
	a.saveConfig()
	a.refreshAll()
}

// setScenarios records the current state for undo, then replaces the scenarios.
func (a *App) setScenarios(scenarios []model.Scenario, label string) {
	a.history.Push(a.snapshot(label))
	a.scenarios = scenarios
	a.evaluate()
	a.refreshSettings()
}

func (a *App) undo() {
	snap, ok := a.history.Undo(a.snapshot("current"))
	if !ok {
		return
	}
	a.restore(snap)
}

func (a *App) redo() {
	snap, ok := a.history.Redo(a.snapshot("current"))
	if !ok {
		return
	}
	a.restore(snap)
}

func (a *App) restore(snap Snapshot) {
	a.log.Debug("restoring snapshot", "label", snap.Label)
	a.cfg = snap.Config
	a.scenarios = snap.Scenarios
	a.saveConfig()
	a.refreshAll()
}

func (a *App) toggleDebug() {
	a.cfg.Debug = !a.cfg.Debug
	a.play.ctl.SetDebug(a.cfg.Debug)
	if !a.cfg.Debug {
		a.play.ctl.Hide()
	}
	a.saveConfig()
	a.updateModeLabel()
	a.refreshSettings()
}

func (a *App) saveConfig() {
	if a.cfgPath == "" {
		return
	}
	if err := project.SaveConfig(a.cfgPath, a.cfg); err != nil {
		a.log.Error("saving config failed", "path", a.cfgPath, "error", err)
		dialog.ShowError(err, a.window)
	}
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) evaluate() {
	a.results = export.Evaluate(engine.New(a.cfg), a.scenarios)
	a.refreshResults()
}

func (a *App) currentSet() model.ScenarioSet {
	return model.ScenarioSet{Name: a.setName, Config: a.cfg, Scenarios: a.scenarios}
}

func (a *App) saveScenarios() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveScenarios(path, a.currentSet()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(a.setName + ".tipplace.json")
	d.Show()
}

func (a *App) loadScenarios() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		set, err := project.LoadScenarios(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setName = set.Name
		a.setScenarios(set.Scenarios, "Open Scenarios")
	}, a.window)
	d.Show()
}

func (a *App) exportReport(kind string) {
	if len(a.results) == 0 {
		dialog.ShowInformation("No scenarios", "Import or open scenarios before exporting a report.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()

		switch kind {
		case "pdf":
			err = export.ExportPDF(path, a.cfg, a.results)
		case "xlsx":
			err = export.ExportXLSX(path, a.results)
		case "dxf":
			err = export.ExportDXF(path, a.cfg, a.results)
		default:
			err = fmt.Errorf("unknown report format %q", kind)
		}
		if err != nil {
			a.log.Error("report export failed", "path", path, "error", err)
			dialog.ShowError(err, a.window)
			return
		}

		a.log.Info("report exported", "path", path, "scenarios", len(a.results))
		a.cfg.AddRecentReport(path, maxRecentReports)
		a.saveConfig()
		a.refreshSettings()
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Report saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(a.setName + "." + kind)
	d.Show()
}

func (a *App) backupData() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.ExportAllData(path, a.cfg, []model.ScenarioSet{a.currentSet()}); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Backup Complete",
			fmt.Sprintf("All data saved to %s", path), a.window)
	}, a.window)
	d.SetFileName("tipplace-backup.json")
	d.Show()
}

func (a *App) restoreData() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		data, err := project.ImportAllData(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.history.Push(a.snapshot("Restore Data"))
		a.cfg = data.Config
		a.scenarios = nil
		if len(data.Scenarios) > 0 {
			a.setName = data.Scenarios[0].Name
			a.scenarios = data.Scenarios[0].Scenarios
		}
		a.saveConfig()
		a.refreshAll()
	}, a.window)
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := scenarioimporter.ImportCSV(reader.URI().Path())
		a.handleImportResult(result, reader.URI().Path())
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := scenarioimporter.ImportExcel(reader.URI().Path())
		a.handleImportResult(result, reader.URI().Path())
	}, a.window)
}

// importDXF asks for the viewport and tooltip size the drawing's targets
// should be evaluated against, since a drawing carries neither.
func (a *App) importDXF() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.showDXFSizeDialog(path)
	}, a.window)
}

func (a *App) showDXFSizeDialog(path string) {
	viewportW := widget.NewEntry()
	viewportW.SetText("1280")
	viewportH := widget.NewEntry()
	viewportH.SetText("800")
	tipW := widget.NewEntry()
	tipW.SetText("160")
	tipH := widget.NewEntry()
	tipH.SetText("40")

	form := dialog.NewForm("Import DXF Targets", "Import", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Viewport width", viewportW),
			widget.NewFormItem("Viewport height", viewportH),
			widget.NewFormItem("Tooltip width", tipW),
			widget.NewFormItem("Tooltip height", tipH),
		},
		func(ok bool) {
			if !ok {
				return
			}
			vw, _ := strconv.ParseFloat(viewportW.Text, 64)
			vh, _ := strconv.ParseFloat(viewportH.Text, 64)
			tw, _ := strconv.ParseFloat(tipW.Text, 64)
			th, _ := strconv.ParseFloat(tipH.Text, 64)
			if vw <= 0 || vh <= 0 || tw <= 0 || th <= 0 {
				dialog.ShowError(fmt.Errorf("viewport and tooltip sizes must be > 0"), a.window)
				return
			}
			result := scenarioimporter.ImportDXF(path,
				model.Size{Width: vw, Height: vh}, model.Size{Width: tw, Height: th})
			a.handleImportResult(result, path)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

func (a *App) handleImportResult(result scenarioimporter.ImportResult, path string) {
	// Show errors if any
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	for _, w := range result.Warnings {
		a.log.Warn("import warning", "file", path, "warning", w)
	}

	if len(result.Scenarios) == 0 {
		return
	}

	scenarios := append(append([]model.Scenario{}, a.scenarios...), result.Scenarios...)
	if len(a.scenarios) == 0 {
		a.setName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	a.setScenarios(scenarios, "Import Scenarios")
	a.tabs.SelectIndex(1)

	msg := fmt.Sprintf("Successfully imported %d scenarios.", len(result.Scenarios))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}
