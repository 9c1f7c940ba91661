// tipctl: command-line access to the tooltip placement engine
//
// Build:
//   go build -o tipctl ./cmd/tipctl
//
// Examples:
//   tipctl place --viewport 1280x800 --target 10,10,80,30 --tooltip 160x40
//   tipctl report --format pdf --out report.pdf "scenarios/**/*.csv"
//   tipctl config show

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TipPlace/internal/model"
	"github.com/piwi3910/TipPlace/internal/project"
)

// Version information set at build time.
var version = "dev"

// globals holds state shared by every subcommand.
type globals struct {
	configPath string
	verbose    bool

	cfg model.Config
	log *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "tipctl",
		Short: "Compute tooltip placements and build placement reports",
		Long: `tipctl runs the same placement engine as the TipPlace desktop app.

It can place a single tooltip, evaluate scenario files into PDF, Excel, or
DXF reports, and inspect the effective configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", project.DefaultConfigPath(), "Config file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log engine decisions")

	rootCmd.AddCommand(
		placeCmd(g),
		reportCmd(g),
		configCmd(g),
		versionCmd(),
	)
	return rootCmd
}

func (g *globals) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	g.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.log)

	cfg, err := project.LoadEffectiveConfig(g.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	g.cfg = cfg
	g.log.Debug("config loaded", "path", g.configPath,
		"gap", cfg.Gap, "viewport_pad", cfg.ViewportPad,
		"min_arrow_pad", cfg.MinArrowPad, "arrow_size", cfg.ArrowSize)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
