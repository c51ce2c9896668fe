package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/flipstack/pkg/errors"
	flipio "github.com/matzehuels/flipstack/pkg/io"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	format string // text or json
	output string // JSON output file; stdout when empty
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "batch [file.toml]",
		Short: "Solve every puzzle listed in a TOML file",
		Long: `Solve every [[puzzle]] of a TOML batch file.

A puzzle that fails validation or is declined does not stop the batch; the
command exits with an error after reporting all results if any puzzle failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format, batchFormats); err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

var batchFormats = []string{formatText, formatJSON}

func (c *CLI) runBatch(ctx context.Context, w io.Writer, path string, opts batchOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	puzzles, err := flipio.ImportPuzzles(path)
	if err != nil {
		return err
	}
	s, err := c.newSolver()
	if err != nil {
		return err
	}

	// the solver logs to stderr too, so only animate on a terminal
	var spinOut io.Writer = io.Discard
	if isTerminal(c.stderr) {
		spinOut = c.stderr
	}
	spin := newBatchSpinner(ctx, spinOut, len(puzzles))
	spin.Start()

	entries := make([]flipio.BatchEntry, 0, len(puzzles))
	for _, p := range puzzles {
		if err := ctx.Err(); err != nil {
			spin.Stop()
			return err
		}
		spin.Advance(p.Name)
		res, err := s.Solve(ctx, p.Query())
		if err != nil {
			logger.Debug("puzzle failed", "name", p.Name, "err", err)
		}
		entries = append(entries, flipio.BatchEntry{Puzzle: p, Result: res, Err: err})
	}
	spin.Stop()

	failed := 0
	for _, e := range entries {
		if e.Err != nil {
			failed++
		}
	}
	prog.done(fmt.Sprintf("Solved %d puzzles", len(entries)-failed))

	if err := writeBatch(w, entries, opts); err != nil {
		return err
	}
	if failed > 0 {
		return errs.New(errs.ErrCodeInvalidBatch, "%d of %d puzzles failed", failed, len(entries))
	}
	return nil
}

func writeBatch(w io.Writer, entries []flipio.BatchEntry, opts batchOpts) error {
	if opts.format == formatText {
		printBatch(w, entries)
		return nil
	}
	if opts.output == "" {
		return flipio.WriteBatchJSON(entries, w)
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "create %s", opts.output)
	}
	if err := flipio.WriteBatchJSON(entries, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printFile(w, opts.output)
	return nil
}

// printBatch renders one table row per puzzle.
func printBatch(w io.Writer, entries []flipio.BatchEntry) {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = batchRow(e)
	}
	printTable(w, []string{"Puzzle", "Mode", "Discs", "Flips", "Explored", "Time", "Status"}, rows,
		func(row, col int) lipgloss.Style {
			if col != 6 {
				return lipgloss.NewStyle()
			}
			switch rows[row][col] {
			case "solved":
				return StyleSuccess
			case "declined", "unreachable":
				return StyleWarning
			}
			return StyleError
		})
}

func batchRow(e flipio.BatchEntry) []string {
	name, mode := e.Puzzle.Name, e.Puzzle.Mode().String()
	discs := strconv.Itoa(len(e.Puzzle.Start))
	if e.Err != nil {
		return []string{name, mode, discs, "-", "-", "-", string(errs.GetCode(e.Err))}
	}

	res := e.Result
	flips := "-"
	switch {
	case res.Solved():
		flips = strconv.Itoa(*res.FewestMoves)
	case !res.Admitted:
		flips = boundText(res.UpperBound, res.BoundExact)
	}
	explored, elapsed := "-", "-"
	if res.Admitted {
		explored = strconv.Itoa(res.Explored)
		elapsed = res.Elapsed.Round(time.Microsecond).String()
	}
	return []string{name, mode, discs, flips, explored, elapsed, outcome(res)}
}
