package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TipPlace/internal/model"
)

var themeOptions = []string{"system", "light", "dark"}

// buildSettingsPanel edits a draft of the configuration. Nothing takes effect
// until Apply, which records the previous state for undo.
func (a *App) buildSettingsPanel() fyne.CanvasObject {
	draft := copyConfig(a.cfg)

	// Helper to create a bound float entry
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	spacingSection := widget.NewCard("Spacing",
		"Distances used when positioning the tooltip",
		container.NewGridWithColumns(2,
			widget.NewLabel("Gap to target"), floatEntry(&draft.Gap),
			widget.NewLabel("Viewport padding"), floatEntry(&draft.ViewportPad),
			widget.NewLabel("Minimum arrow padding"), floatEntry(&draft.MinArrowPad),
			widget.NewLabel("Arrow size"), floatEntry(&draft.ArrowSize),
		))

	nativeCheck := widget.NewCheck("", func(b bool) { draft.UseNative = b })
	nativeCheck.Checked = draft.UseNative
	debugCheck := widget.NewCheck("", func(b bool) { draft.Debug = b })
	debugCheck.Checked = draft.Debug

	renderingSection := widget.NewCard("Rendering", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Anchor to target when supported"), nativeCheck,
			widget.NewLabel("Keep tooltip after leaving (debug)"), debugCheck,
		))

	themeSelect := widget.NewSelect(themeOptions, func(selected string) { draft.Theme = selected })
	if draft.Theme == "" {
		themeSelect.SetSelected("system")
	} else {
		themeSelect.SetSelected(draft.Theme)
	}

	appearanceSection := widget.NewCard("Appearance", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Theme"), themeSelect,
		))

	recent := container.NewVBox()
	if len(a.cfg.RecentReports) == 0 {
		recent.Add(widget.NewLabel("No reports exported yet."))
	}
	for _, path := range a.cfg.RecentReports {
		recent.Add(widget.NewLabel(path))
	}
	recentSection := widget.NewCard("Recent Reports", "", recent)

	applyBtn := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
		if err := draft.Validate(); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.applyConfig(draft, "Edit Settings")
	})
	applyBtn.Importance = widget.HighImportance

	undoBtn := widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), a.undo)
	redoBtn := widget.NewButtonWithIcon("Redo", theme.ContentRedoIcon(), a.redo)
	if !a.history.CanUndo() {
		undoBtn.Disable()
	}
	if !a.history.CanRedo() {
		redoBtn.Disable()
	}

	resetBtn := widget.NewButtonWithIcon("Reset to Defaults", theme.ViewRefreshIcon(), func() {
		defaults := model.DefaultConfig()
		defaults.RecentReports = a.cfg.RecentReports
		a.applyConfig(defaults, "Reset Settings")
	})

	status := widget.NewLabel(fmt.Sprintf("Config file: %s", a.cfgPath))
	status.Importance = widget.LowImportance

	return container.NewBorder(
		nil,
		container.NewVBox(
			widget.NewSeparator(),
			container.NewHBox(undoBtn, redoBtn, layout.NewSpacer(), resetBtn, applyBtn),
			status,
		),
		nil, nil,
		container.NewVScroll(container.NewVBox(
			spacingSection,
			renderingSection,
			appearanceSection,
			recentSection,
		)),
	)
}
