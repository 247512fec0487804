package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/winedex/internal/cli"
	"github.com/okian/winedex/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logs go to stderr so command output stays clean.
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	level := os.Getenv("WINEDEX_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	_ = logger.SetLevelString(level)

	if err := cli.New(cli.WithLogger(logger.Get())).Execute(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
