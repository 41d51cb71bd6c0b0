package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/roadmap-planner/internal/config"
	"github.com/jonathan/roadmap-planner/internal/db"
	"github.com/jonathan/roadmap-planner/internal/observability"
	"github.com/jonathan/roadmap-planner/internal/profile"
	"github.com/jonathan/roadmap-planner/internal/render"
	"github.com/jonathan/roadmap-planner/internal/roadmap"
	"github.com/jonathan/roadmap-planner/internal/server"
	"github.com/jonathan/roadmap-planner/internal/types"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type generateOptions struct {
	profiles     []string
	out          string
	format       string
	fallbackOnly bool
	save         bool
	verbose      bool
	concurrency  int
}

// generated pairs an input file with its outcome
type generated struct {
	path    string
	profile types.Profile
	outcome roadmap.Outcome
}

func newGenerateCmd(global *globalOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate roadmaps from profile files",
		Long: `Generate a roadmap for each --profile (YAML or JSON). Profiles are processed
concurrently. Generation never fails: when the model is unavailable or replies
with something unusable, a rule-based roadmap is produced instead.`,
		Example: `  roadmap generate --profile me.yaml
  roadmap generate --profile a.yaml --profile b.json --format text
  roadmap generate --profile me.yaml --fallback-only --out plan.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), global, opts)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.profiles, "profile", "p", nil, "Profile file (repeatable)")
	f.StringVarP(&opts.out, "out", "o", "", "Write output to this file instead of stdout")
	f.StringVarP(&opts.format, "format", "f", formatJSON, "Output format: json or text")
	f.BoolVar(&opts.fallbackOnly, "fallback-only", false, "Skip the model and use the rule-based generator")
	f.BoolVar(&opts.save, "save", false, "Record each run in the run history database (requires DATABASE_URL)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Print profile and generation diagnostics to stderr")
	f.IntVar(&opts.concurrency, "concurrency", 4, "Maximum profiles generated at once")

	if err := cmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	return cmd
}

func runGenerate(ctx context.Context, stdout, stderr io.Writer, global *globalOptions, opts *generateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format := strings.ToLower(opts.format)
	if format != formatJSON && format != formatText {
		return fmt.Errorf("unknown format %q (want json or text)", opts.format)
	}
	if opts.concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", opts.concurrency)
	}

	// profiles are validated up front so a typo fails before any request is made
	results := make([]generated, len(opts.profiles))
	for i, path := range opts.profiles {
		p, err := profile.Load(path)
		if err != nil {
			return err
		}
		results[i] = generated{path: path, profile: p}
	}

	a, err := loadApp(global, config.Config{})
	if err != nil {
		return err
	}
	defer a.close()

	generate := a.generator(ctx, opts.fallbackOnly)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)
	for i := range results {
		g.Go(func() error {
			results[i].outcome = generate(gctx, results[i].profile)
			a.logger.Info("Generated roadmap",
				"profile", results[i].path,
				"source", string(results[i].outcome.Source),
				"duration_ms", results[i].outcome.Duration.Milliseconds(),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.verbose {
		printer := observability.NewPrinter(stderr)
		for _, r := range results {
			printer.PrintProfile(r.path, r.profile)
			printer.PrintOutcome(r.path, r.profile, r.outcome)
		}
	}

	if opts.save {
		if err := saveRuns(ctx, a, results); err != nil {
			return err
		}
	}

	if opts.out == "" {
		return writeResults(stdout, format, results)
	}

	f, err := createOutput(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeResults(f, format, results); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// createOutput opens the --out file; replaced in tests.
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func writeResults(w io.Writer, format string, results []generated) error {
	if format == formatText {
		return writeText(w, results)
	}
	return writeJSON(w, results)
}

func saveRuns(ctx context.Context, a *app, results []generated) error {
	if a.cfg.DatabaseURL == "" {
		return fmt.Errorf("--save requires DATABASE_URL or database_url in the config file")
	}
	database, err := db.Connect(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	for _, r := range results {
		id, err := database.SaveRun(ctx, server.NewRunInput(r.profile, r.outcome))
		if err != nil {
			return fmt.Errorf("failed to save run for %s: %w", r.path, err)
		}
		a.logger.Info("Saved run", "profile", r.path, "id", id.String())
	}
	return nil
}

// writeJSON prints a single result as an object and several as an array, in
// the order the profiles were given.
func writeJSON(w io.Writer, results []generated) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0].outcome.Result)
	}
	out := make([]types.GenerationResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.outcome.Result)
	}
	return enc.Encode(out)
}

func writeText(w io.Writer, results []generated) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := render.Text(w, titleFor(r), r.outcome.Result); err != nil {
			return err
		}
	}
	if len(results) > 1 {
		fmt.Fprintln(w, color.New(color.Faint).Sprintf("%d roadmaps generated", len(results)))
	}
	return nil
}

func titleFor(r generated) string {
	if r.profile.Name != "" {
		return r.profile.Name + "'s Internship Roadmap"
	}
	return strings.TrimSuffix(filepath.Base(r.path), filepath.Ext(r.path))
}
