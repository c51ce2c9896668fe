package cli

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flipstack/pkg/core/stack"
	"github.com/matzehuels/flipstack/pkg/solver"
)

// diameterCommand creates the diameter command.
func (c *CLI) diameterCommand() *cobra.Command {
	var (
		burnt  bool
		n      int
		format = formatText
	)

	cmd := &cobra.Command{
		Use:   "diameter",
		Short: "Show the worst-case flip counts and which sizes are searched",
		Long: `Show the pancake number (or burnt pancake number) for every size where it is
known, the upper bound used beyond that, and whether the configured ceiling
admits an exact search.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format, batchFormats); err != nil {
				return err
			}
			s, err := c.newSolver()
			if err != nil {
				return err
			}

			mode := stack.ModeOf(burnt)
			rows := s.Diameters(mode)
			if cmd.Flags().Changed("size") {
				row, err := s.Diameter(n, mode)
				if err != nil {
					return err
				}
				rows = []solver.DiameterRow{row}
			}

			w := cmd.OutOrStdout()
			if format == formatJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			printDiameters(w, rows)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&burnt, "burnt", "b", false, "burnt pancakes")
	cmd.Flags().IntVarP(&n, "size", "n", 0, "show a single stack size")
	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: text, json")

	return cmd
}

// printDiameters renders the diameter table.
func printDiameters(w io.Writer, rows []solver.DiameterRow) {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		maxFlips := "?"
		if r.MaxFlips != nil {
			maxFlips = strconv.Itoa(*r.MaxFlips)
		}
		searched := "no"
		if r.Admitted {
			searched = "yes"
		}
		cells[i] = []string{strconv.Itoa(r.N), maxFlips, boundText(r.UpperBound, r.BoundExact), searched}
	}
	printTable(w, []string{"Discs", "Max flips", "Bound", "Searched"}, cells,
		func(row, col int) lipgloss.Style {
			if col == 3 && cells[row][col] == "yes" {
				return StyleSuccess
			}
			if col == 3 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
}
