// Package main is the goldmanager CLI executable
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/goldmanager/internal/client/cli"
)

func main() { os.Exit(run()) }

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.RootCommand().ExecuteContext(ctx)
	if err != nil {
		return 1
	}
	return 0
}
