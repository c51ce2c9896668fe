package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/flipstack/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cli.Execute(ctx, os.Stdout, os.Stderr, os.Args[1:])
	cli.PrintError(os.Stderr, err)
	cancel()
	os.Exit(cli.ExitCode(err))
}
