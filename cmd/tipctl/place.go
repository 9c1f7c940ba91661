package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TipPlace/internal/engine"
	"github.com/piwi3910/TipPlace/internal/model"
)

func placeCmd(g *globals) *cobra.Command {
	var (
		viewport  string
		target    string
		tooltip   string
		placement string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place one tooltip and print every scored candidate",
		Long: `Run one positioning pass for a target inside a viewport.

Examples:
  tipctl place --viewport 1280x800 --target 10,10,80,30 --tooltip 160x40
  tipctl place --viewport 400x300 --target 350,20,40,20 --tooltip 120x30 --placement left --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vp, err := parseSize(viewport)
			if err != nil {
				return err
			}
			rect, err := parseRect(target)
			if err != nil {
				return err
			}
			tip, err := parseSize(tooltip)
			if err != nil {
				return err
			}
			var preferred model.Placement
			if placement != "" {
				if preferred, err = model.ParsePlacement(placement); err != nil {
					return err
				}
			}

			layout := engine.New(g.cfg).Layout(rect, tip, vp, preferred)
			g.log.Debug("placed", "placement", string(layout.Placement),
				"x", layout.Position.X, "y", layout.Position.Y, "arrow", layout.ArrowOffset)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(layout)
			}
			printLayout(cmd.OutOrStdout(), layout)
			return nil
		},
	}

	cmd.Flags().StringVar(&viewport, "viewport", "1280x800", "Viewport size, WIDTHxHEIGHT")
	cmd.Flags().StringVar(&target, "target", "", "Target box, LEFT,TOP,WIDTH,HEIGHT")
	cmd.Flags().StringVar(&tooltip, "tooltip", "", "Tooltip size, WIDTHxHEIGHT")
	cmd.Flags().StringVarP(&placement, "placement", "p", "", "Force a placement (top, top-start, ..., bottom)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the layout as JSON")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("tooltip")

	return cmd
}

func printLayout(w io.Writer, layout model.Layout) {
	fmt.Fprintf(w, "Placement:    %s\n", layout.Placement)
	fmt.Fprintf(w, "Position:     %.2f, %.2f\n", layout.Position.X, layout.Position.Y)
	fmt.Fprintf(w, "Arrow offset: %.2f\n", layout.ArrowOffset)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-13s %8s %8s %8s %8s %8s\n", "CANDIDATE", "TOP", "BOTTOM", "LEFT", "RIGHT", "TOTAL")
	for _, c := range layout.Candidates {
		marker := " "
		if c.Placement == layout.Placement {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%-12s %8.2f %8.2f %8.2f %8.2f %8.2f\n", marker, c.Placement,
			c.Overflow.Top, c.Overflow.Bottom, c.Overflow.Left, c.Overflow.Right, c.Total)
	}
}
