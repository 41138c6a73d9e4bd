package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/zpdzap/muslambda/internal/cli"
	"github.com/zpdzap/muslambda/internal/engine"
	"github.com/zpdzap/muslambda/internal/logging"
)

// Build-time variables (set via ldflags)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	logging.Setup(slog.LevelInfo)

	// Cancellation only stops the next engine step from starting; a running
	// step receives the terminal's signal directly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := cli.New()
	app.SetVersion(version, commit, date)

	err := app.Execute(ctx)
	stop()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(engine.ExitCode(err))
	}
}
