package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"sqlite-crud/internal/cli"
	"sqlite-crud/internal/config"
	"sqlite-crud/internal/errors"
	"sqlite-crud/internal/logging"
)

func main() {
	// Defaults, then SQLD_* environment; flags are applied by the root command
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Init(cfg.Application.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(cfg).ExecuteContext(ctx); err != nil {
		eh := cli.NewErrorHandler()
		if errors.ShouldLogError(err) {
			logger.Debug("command failed", "code", eh.GetErrorCode(err), "error", err)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", eh.HandleSimple(err))
		stop()
		os.Exit(eh.ExitCode(err))
	}
}
