package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flipstack/pkg/core/admission"
	"github.com/matzehuels/flipstack/pkg/core/stack"
	errs "github.com/matzehuels/flipstack/pkg/errors"
	flipio "github.com/matzehuels/flipstack/pkg/io"
	"github.com/matzehuels/flipstack/pkg/render"
	"github.com/matzehuels/flipstack/pkg/render/nodelink"
	"github.com/matzehuels/flipstack/pkg/scramble"
	"github.com/matzehuels/flipstack/pkg/solver"
)

// Output formats accepted by solve.
const (
	formatText = "text"
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPDF  = "pdf"
	formatPNG  = "png"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	burnt    bool   // signed discs
	goal     string // goal stack; empty means sorted
	random   int    // scramble a stack of this size instead of reading one
	seed     uint64 // scramble seed
	seedSet  bool   // whether --seed was given
	format   string // text, json, dot, svg, pdf, png
	output   string // output file; stdout when empty
	detailed bool   // list every disc in diagram nodes
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "solve [stack]",
		Short: "Find the fewest flips that sort a stack",
		Long: `Find a shortest sequence of prefix reversals from a start stack to a goal.

The stack lists disc sizes from top to bottom, separated by commas or spaces.
In burnt mode a negative size is a disc with its burnt side up; put the stack
after "--" so it is not read as a flag.`,
		Example: `  flipstack solve 3,1,2
  flipstack solve --burnt -- -2,1,-3
  flipstack solve --random 7 --seed 42 --format svg -o path.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			if err := validateFormat(opts.format, solveFormats); err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.burnt, "burnt", "b", false, "burnt pancakes: discs carry a sign")
	cmd.Flags().StringVarP(&opts.goal, "goal", "g", "", "goal stack (default: sorted, burnt side down)")
	cmd.Flags().IntVar(&opts.random, "random", 0, "solve a random stack of this many discs")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for --random (default: current time)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json, dot, svg, pdf, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "draw every disc in diagram nodes")

	return cmd
}

var solveFormats = []string{formatText, formatJSON, formatDOT, formatSVG, formatPDF, formatPNG}

// validateFormat checks format against the allowed list.
func validateFormat(format string, allowed []string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
}

func (c *CLI) runSolve(ctx context.Context, w io.Writer, args []string, opts solveOpts) error {
	logger := loggerFromContext(ctx)

	q, err := buildQuery(args, opts, logger.Infof)
	if err != nil {
		return err
	}
	s, err := c.newSolver()
	if err != nil {
		return err
	}
	res, err := s.Solve(ctx, q)
	if err != nil {
		return err
	}

	switch opts.format {
	case formatText:
		printResult(w, res, s.Guard)
		return nil
	case formatJSON:
		if opts.output != "" {
			if err := flipio.ExportJSON(res, opts.output); err != nil {
				return err
			}
			printFile(w, opts.output)
			return nil
		}
		return flipio.WriteJSON(res, w)
	}

	data, err := renderDiagram(ctx, res, opts)
	if err != nil {
		return err
	}
	return writeOutput(w, opts.output, data)
}

// buildQuery reads the start stack from args or scrambles one, and the goal
// from --goal. logf reports the seed of a random stack.
func buildQuery(args []string, opts solveOpts, logf func(string, ...any)) (solver.Query, error) {
	mode := stack.ModeOf(opts.burnt)
	q := solver.Query{Mode: mode}

	if opts.goal != "" {
		goal, err := stack.Parse(opts.goal)
		if err != nil {
			return q, err
		}
		q.Goal = goal
	}

	switch {
	case len(args) == 1 && opts.random > 0:
		return q, errs.New(errs.ErrCodeInvalidInput, "give either a stack or --random, not both")
	case len(args) == 1:
		start, err := stack.Parse(args[0])
		if err != nil {
			return q, err
		}
		q.Start = start
	case opts.random > 0:
		seed := opts.seed
		if !opts.seedSet {
			seed = uint64(time.Now().UnixNano())
		}
		sc := scramble.New(seed)
		var (
			start stack.Stack
			err   error
		)
		if q.Goal != nil {
			if len(q.Goal) != opts.random {
				return q, errs.New(errs.ErrCodeLengthMismatch, "goal has %d discs, --random asks for %d", len(q.Goal), opts.random)
			}
			start, err = sc.NextAvoiding(q.Goal, mode)
		} else {
			start, err = sc.Next(opts.random, mode)
		}
		if err != nil {
			return q, err
		}
		logf("Scrambled %s (seed %d)", start.Text(), seed)
		q.Start = start
	default:
		return q, errs.New(errs.ErrCodeInvalidInput, "give a stack to solve or --random N")
	}
	return q, nil
}

// renderDiagram draws the best path as DOT, SVG, PDF or PNG.
func renderDiagram(ctx context.Context, res *solver.Result, opts solveOpts) ([]byte, error) {
	if !res.Solved() {
		return nil, errs.New(errs.ErrCodeUnsupportedSize, "no path to draw: %s", outcome(res))
	}
	if (opts.format == formatPDF || opts.format == formatPNG) && opts.output == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "%s output needs --output", opts.format)
	}

	dot := nodelink.ToDOT(res.BestPath, res.Moves, nodelink.Options{Mode: res.Query.Mode, Detailed: opts.detailed})
	if opts.format == formatDOT {
		return []byte(dot), nil
	}
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch opts.format {
	case formatPDF:
		return render.ToPDF(svg)
	case formatPNG:
		return render.ToPNG(svg, pngScale)
	}
	return svg, nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "write %s", path)
	}
	printFile(w, path)
	return nil
}

// =============================================================================
// Text Output
// =============================================================================

// outcome describes a result in a few words.
func outcome(res *solver.Result) string {
	switch {
	case res.Solved():
		return "solved"
	case !res.Admitted:
		return "declined"
	default:
		return "unreachable"
	}
}

// printResult writes a human-readable report of res. guard is the one that
// declined res, if it was declined.
func printResult(w io.Writer, res *solver.Result, guard admission.Guard) {
	q := res.Query
	n := len(q.Start)

	switch outcome(res) {
	case "solved":
		flips := *res.FewestMoves
		printSuccess(w, "%s in %s %s", q.Start.Text(), StyleNumber.Render(strconv.Itoa(flips)), plural(flips, "flip", "flips"))
		if flips > 0 {
			printTable(w, []string{"Step", "Stack", "Next"}, pathRows(res), nil)
		}
		printKeyValue(w, "Mode", q.Mode.String())
		printKeyValue(w, "Explored", fmt.Sprintf("%d stacks", res.Explored))
		printKeyValue(w, "Elapsed", res.Elapsed.Round(time.Microsecond).String())
	case "declined":
		printWarning(w, "Not searched: %d %s discs is above the ceiling", n, q.Mode)
		printKeyValue(w, "Upper bound", boundText(res.UpperBound, res.BoundExact))
		if env := raiseCeilings(guard, n, q.Mode); env != nil {
			printNextStep(w, "Raise the ceiling", strings.Join(env, " "))
		}
	default:
		printWarning(w, "Goal %s is not reachable from %s", q.Goal.Text(), q.Start.Text())
		printKeyValue(w, "Explored", fmt.Sprintf("%d stacks", res.Explored))
	}
}

// pathRows lists every stack of the best path with the flip taken from it.
func pathRows(res *solver.Result) [][]string {
	rows := make([][]string, len(res.BestPath))
	for i, s := range res.BestPath {
		next := ""
		if i < len(res.Moves) {
			next = fmt.Sprintf("flip top %d", res.Moves[i]+1)
		}
		rows[i] = []string{strconv.Itoa(i), s.Text(), next}
	}
	return rows
}

// boundText formats an upper bound on the fewest flips.
func boundText(bound int, exact bool) string {
	if exact {
		return fmt.Sprintf("≤ %d flips (known diameter)", bound)
	}
	return fmt.Sprintf("≤ %d flips (estimate)", bound)
}

const envCeilingPrefix = "FLIPSTACK_ADMISSION_"

// raiseCeilings returns the environment assignments of the smallest valid
// guard that admits n discs in mode, or nil if none exists. The burnt
// ceiling must stay below the regular one, so raising it may lift both.
func raiseCeilings(g admission.Guard, n int, mode stack.Mode) []string {
	// ceilings are exclusive
	raised := g
	if mode == stack.Signed {
		raised.SignedCeiling = n + 1
		raised.UnsignedCeiling = max(g.UnsignedCeiling, n+2)
	} else {
		raised.UnsignedCeiling = n + 1
	}
	if raised.Validate() != nil {
		return nil
	}

	var env []string
	if raised.UnsignedCeiling != g.UnsignedCeiling {
		env = append(env, fmt.Sprintf("%sUNSIGNED_CEILING=%d", envCeilingPrefix, raised.UnsignedCeiling))
	}
	if raised.SignedCeiling != g.SignedCeiling {
		env = append(env, fmt.Sprintf("%sSIGNED_CEILING=%d", envCeilingPrefix, raised.SignedCeiling))
	}
	return env
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
