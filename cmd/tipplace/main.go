// TipPlace: tooltip placement playground
//
// A cross-platform desktop application that shows a single shared tooltip
// positioned around hovered targets, and turns imported placement scenarios
// into PDF, Excel, and DXF reports.
//
// Build:
//   go build -o tipplace ./cmd/tipplace
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o tipplace.exe ./cmd/tipplace
//   GOOS=darwin  GOARCH=amd64 go build -o tipplace-darwin ./cmd/tipplace

package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/TipPlace/internal/model"
	"github.com/piwi3910/TipPlace/internal/project"
	"github.com/piwi3910/TipPlace/internal/ui"
)

func main() {
	cfgPath := project.DefaultConfigPath()
	cfg, err := project.LoadEffectiveConfig(cfgPath)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err != nil {
		logger.Warn("using default config", "path", cfgPath, "error", err)
		cfg = project.ApplyEnv(model.DefaultConfig(), os.LookupEnv)
	}

	application := app.NewWithID("com.piwi3910.tipplace")
	window := application.NewWindow("TipPlace — Tooltip Placement Playground")

	appUI := ui.NewApp(window, cfg, cfgPath, logger)
	application.Settings().SetTheme(appUI.Theme())
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1000, 700))
	window.CenterOnScreen()
	window.ShowAndRun()
}
