package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/offlinefirst/sideswipe/internal/buildinfo"
	"github.com/offlinefirst/sideswipe/internal/cmd"
)

// version is set via -ldflags "-X main.version=...".
var version = ""

func main() {
	buildinfo.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	root := cmd.NewRootCommand()
	if err := root.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
