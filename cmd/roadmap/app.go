package main

import (
	"context"

	"github.com/jonathan/roadmap-planner/internal/config"
	"github.com/jonathan/roadmap-planner/internal/fallback"
	"github.com/jonathan/roadmap-planner/internal/llm"
	"github.com/jonathan/roadmap-planner/internal/logging"
	"github.com/jonathan/roadmap-planner/internal/roadmap"
	"github.com/jonathan/roadmap-planner/internal/types"
)

// app bundles what every command needs after configuration is resolved.
type app struct {
	cfg    config.Config
	logger *logging.Logger
	client llm.Client
}

func loadApp(opts *globalOptions, overrides config.Config) (*app, error) {
	overrides.LogMode = opts.logMode
	overrides.Provider = opts.provider
	overrides.Model = opts.model

	cfg, err := config.Resolve(overrides, opts.configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger}, nil
}

// newClient is replaced in tests.
var newClient = llm.NewClient

// generator returns the orchestrator, or a direct fallback generator when
// offline is set. The generative client is created lazily and closed by close.
// A client that cannot be created leaves the orchestrator without one, so
// every request takes the fallback path.
func (a *app) generator(ctx context.Context, offline bool) roadmapFunc {
	if offline {
		return func(_ context.Context, p types.Profile) roadmap.Outcome {
			return roadmap.Outcome{Result: fallback.Generate(p), Source: roadmap.SourceFallback}
		}
	}

	client, err := newClient(ctx, a.cfg.LLM())
	if err != nil {
		a.logger.Warn("Generative client unavailable, using fallback roadmaps",
			"provider", a.cfg.Provider,
			"error", err,
		)
		client = nil
	}
	a.client = client

	g := roadmap.NewGenerator(client,
		roadmap.WithModel(a.cfg.Model),
		roadmap.WithTimeout(a.cfg.Timeout()),
		roadmap.WithLogger(a.logger),
	)
	return g.Generate
}

func (a *app) close() {
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			a.logger.Warn("Failed to close generative client", "error", err)
		}
	}
	a.logger.Sync()
}

// roadmapFunc matches roadmap.Generator.Generate
type roadmapFunc func(ctx context.Context, p types.Profile) roadmap.Outcome

// Generate lets roadmapFunc satisfy server.RoadmapGenerator.
func (f roadmapFunc) Generate(ctx context.Context, p types.Profile) roadmap.Outcome {
	return f(ctx, p)
}
