package cli

import (
	"context"
	"errors"
	"io"

	errs "github.com/matzehuels/flipstack/pkg/errors"
)

// Process exit codes returned by [ExitCode].
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130 // shell convention for SIGINT
)

// Execute runs the flipstack CLI with args, logging to stderr. The command
// tree is built fresh on every call.
//
// Logging:
//   - Default: the log.level from config, info unless set
//   - With --verbose (-v): debug level
//
// Example:
//
//	func main() {
//	    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	    defer cancel()
//	    os.Exit(cli.ExitCode(cli.Execute(ctx, os.Stdout, os.Stderr, os.Args[1:])))
//	}
func Execute(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	return New(stderr, LogInfo).run(ctx, stdout, stderr, args)
}

// run executes the command tree and closes the log file even when the
// command failed, since cobra skips post-run hooks on error.
func (c *CLI) run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	root := c.RootCommand()
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := c.closeLogFile(); err == nil {
		err = cerr
	}
	return err
}

// PrintError writes err to w for a user. Cancellation is not reported.
func PrintError(w io.Writer, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	printError(w, "%s", errs.UserMessage(err))
	if code := errs.GetCode(err); code != "" {
		printDetail(w, "code: %s", code)
	}
}

// ExitCode maps an error returned by [Execute] to a process exit code.
// Caller mistakes, such as an invalid stack or an unknown format, exit
// with ExitUsage.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errs.IsValidation(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}
