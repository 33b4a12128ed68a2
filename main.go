package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/xolan/tasktime/cmd"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is replaced in tests
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
