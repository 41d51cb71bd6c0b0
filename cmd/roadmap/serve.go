package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/roadmap-planner/internal/config"
	"github.com/jonathan/roadmap-planner/internal/db"
	"github.com/jonathan/roadmap-planner/internal/server"
)

func newServeCmd(global *globalOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server exposing POST /roadmaps, GET /roadmaps, GET /roadmaps/{id}
and GET /health. When DATABASE_URL is set, generations are recorded in run history.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), global, port)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default PORT or 8080)")
	return cmd
}

func runServe(ctx context.Context, global *globalOptions, port int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := loadApp(global, config.Config{Port: port})
	if err != nil {
		return err
	}
	defer a.close()

	generate := a.generator(ctx, false)

	var store server.RunStore
	if a.cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		store = database
	} else {
		a.logger.Warn("DATABASE_URL not set, run history disabled")
	}

	srv := server.New(server.Config{Port: a.cfg.Port, Logger: a.logger}, generate, store)
	return srv.Start(ctx)
}
