// Package roadmap orchestrates roadmap generation: compose the request, call
// the generative service once, extract and normalize the reply, and fall back
// to the rule-based generator on any failure.
package roadmap

import (
	"context"
	"time"

	"github.com/jonathan/roadmap-planner/internal/extract"
	"github.com/jonathan/roadmap-planner/internal/fallback"
	"github.com/jonathan/roadmap-planner/internal/llm"
	"github.com/jonathan/roadmap-planner/internal/logging"
	"github.com/jonathan/roadmap-planner/internal/normalize"
	"github.com/jonathan/roadmap-planner/internal/types"
)

// Source says which path produced a result
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Stage names the step of the generative path that failed
type Stage string

const (
	StageNone      Stage = ""
	StageCompose   Stage = "compose"
	StageRequest   Stage = "request"
	StageExtract   Stage = "extract"
	StageNormalize Stage = "normalize"
)

// Outcome is a generation result plus operator-facing details of how it was
// produced. Stage and Err are set only when Source is SourceFallback.
type Outcome struct {
	Result   types.GenerationResult
	Source   Source
	Stage    Stage
	Err      error
	Duration time.Duration
}

// Generator produces roadmaps. It is safe for concurrent use as long as the
// underlying client is.
type Generator struct {
	client  llm.Client
	model   string
	timeout time.Duration
	logger  *logging.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithModel overrides the client's default model.
func WithModel(model string) Option {
	return func(g *Generator) { g.model = model }
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *logging.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithTimeout bounds the generative request. Zero leaves the caller's context as is.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// NewGenerator returns a Generator backed by client. A nil client is allowed;
// every call then resolves through the fallback generator.
func NewGenerator(client llm.Client, opts ...Option) *Generator {
	g := &Generator{
		client: client,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateRoadmap returns a roadmap for p. It never fails.
func (g *Generator) GenerateRoadmap(ctx context.Context, p types.Profile) types.GenerationResult {
	return g.Generate(ctx, p).Result
}

// Generate runs the pipeline and reports which path produced the result.
func (g *Generator) Generate(ctx context.Context, p types.Profile) Outcome {
	start := time.Now()

	result, stage, err := g.generateAI(ctx, p)
	if err == nil {
		phases, tasks, resources, badges := result.Counts()
		g.logger.Debug("roadmap generated",
			"source", string(SourceAI),
			"phases", phases,
			"tasks", tasks,
			"resources", resources,
			"badges", badges,
		)
		return Outcome{Result: result, Source: SourceAI, Duration: time.Since(start)}
	}

	g.logger.Warn("AI roadmap generation failed, using fallback",
		"stage", string(stage),
		"error_kind", ErrorKind(err),
		"error", err.Error(),
		"role", p.Role(),
	)

	result = fallback.Generate(p)
	g.logger.Debug("fallback roadmap generated", "rules", fallback.AppliedRules(p))

	return Outcome{
		Result:   result,
		Source:   SourceFallback,
		Stage:    stage,
		Err:      err,
		Duration: time.Since(start),
	}
}

// generateAI runs the generative path. Panics are converted into a PanicError
// tagged with the stage that was executing.
func (g *Generator) generateAI(ctx context.Context, p types.Profile) (result types.GenerationResult, stage Stage, err error) {
	stage = StageCompose
	defer func() {
		if r := recover(); r != nil {
			result = types.GenerationResult{}
			err = &PanicError{Stage: stage, Value: r}
		}
	}()

	if g.client == nil {
		return result, StageRequest, &llm.ConfigurationError{Message: "no generative client configured"}
	}

	prompt := ComposePrompt(p)

	stage = StageRequest
	reqCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	reply, err := g.client.Complete(reqCtx, prompt.Messages(), g.model)
	if err != nil {
		return result, stage, err
	}

	stage = StageExtract
	parsed, err := extract.Extract(reply)
	if err != nil {
		return result, stage, err
	}

	stage = StageNormalize
	result, err = normalize.Normalize(parsed)
	if err != nil {
		return types.GenerationResult{}, stage, err
	}
	return result, StageNone, nil
}
