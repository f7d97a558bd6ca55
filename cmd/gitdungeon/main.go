// Command gitdungeon drives one deterministic run of the gameplay core
// against a Git repository, per spec.md §6 "CLI surface".
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/gitdungeon/internal/cmd/gitdungeon"
)

func main() {
	cfg, err := gitdungeon.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(gitdungeon.ExitInvalidArgs)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := gitdungeon.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(gitdungeon.ExitCode(err))
	}
}
