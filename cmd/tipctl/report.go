package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TipPlace/internal/engine"
	"github.com/piwi3910/TipPlace/internal/export"
	"github.com/piwi3910/TipPlace/internal/importer"
	"github.com/piwi3910/TipPlace/internal/model"
	"github.com/piwi3910/TipPlace/internal/project"
)

func reportCmd(g *globals) *cobra.Command {
	var (
		dir      string
		format   string
		output   string
		viewport string
		tooltip  string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "report PATTERN...",
		Short: "Evaluate scenario files into a PDF, Excel, or DXF report",
		Long: `Load every scenario file matching the given patterns, run the placement
engine over them, and write one report.

Patterns support ** and are resolved against --dir. Supported inputs are
scenario sets (.json), CSV (.csv), Excel (.xlsx), and DXF drawings (.dxf).
DXF targets are evaluated against --viewport and --tooltip.

Examples:
  tipctl report --out report.pdf "*.csv"
  tipctl report --format xlsx --out all.xlsx "scenarios/**/*.{csv,json}"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandPatterns(dir, args)
			if err != nil {
				return err
			}

			vp, err := parseSize(viewport)
			if err != nil {
				return err
			}
			tip, err := parseSize(tooltip)
			if err != nil {
				return err
			}

			var scenarios []model.Scenario
			for _, f := range files {
				loaded, warnings, err := loadScenarioFile(f, vp, tip)
				if err != nil {
					if strict {
						return err
					}
					g.log.Warn("skipping file", "file", f, "error", err)
					continue
				}
				for _, w := range warnings {
					g.log.Warn("import warning", "file", f, "warning", w)
				}
				g.log.Debug("loaded scenarios", "file", f, "count", len(loaded))
				scenarios = append(scenarios, loaded...)
			}
			if len(scenarios) == 0 {
				return fmt.Errorf("no scenarios found in %d file(s)", len(files))
			}

			if format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
			}
			results := export.Evaluate(engine.New(g.cfg), scenarios)
			if err := writeReport(format, output, g.cfg, results); err != nil {
				return err
			}

			s := export.Summarize(results)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d scenarios, %d fit, %d fallbacks\n",
				output, s.Total, s.Fitting, s.Fallbacks)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory patterns are resolved against")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: pdf, xlsx, or dxf (default from --out)")
	cmd.Flags().StringVarP(&output, "out", "o", "report.pdf", "Report file")
	cmd.Flags().StringVar(&viewport, "viewport", "1280x800", "Viewport for DXF targets, WIDTHxHEIGHT")
	cmd.Flags().StringVar(&tooltip, "tooltip", "160x40", "Tooltip size for DXF targets, WIDTHxHEIGHT")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first file with errors")

	return cmd
}

// loadScenarioFile reads scenarios from one file, chosen by extension.
// Row-level import errors fail the file.
func loadScenarioFile(path string, viewport, tooltip model.Size) ([]model.Scenario, []string, error) {
	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		set, err := project.LoadScenarios(path)
		if err != nil {
			return nil, nil, err
		}
		return set.Scenarios, nil, nil
	case ".csv":
		result = importer.ImportCSV(path)
	case ".xlsx":
		result = importer.ImportExcel(path)
	case ".dxf":
		result = importer.ImportDXF(path, viewport, tooltip)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if len(result.Errors) > 0 {
		return nil, result.Warnings, fmt.Errorf("%s: %s", path, strings.Join(result.Errors, "; "))
	}
	return result.Scenarios, result.Warnings, nil
}

func writeReport(format, path string, cfg model.Config, results []export.Result) error {
	switch format {
	case "pdf":
		return export.ExportPDF(path, cfg, results)
	case "xlsx":
		return export.ExportXLSX(path, results)
	case "dxf":
		return export.ExportDXF(path, cfg, results)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
