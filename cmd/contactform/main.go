package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/contactform/app/intake"
	"github.com/dmitrymomot/contactform/core/config"
	"github.com/dmitrymomot/contactform/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg intake.Config
	config.MustLoad(&cfg)

	app, err := intake.NewApp(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize application", logger.Error(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		slog.Error("application stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
