// Package main provides the roadmap CLI: generate internship preparation
// roadmaps from profile files, serve the HTTP API, inspect prompts and validate roadmap files.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

// globalOptions are shared by every subcommand
type globalOptions struct {
	configPath string
	logMode    string
	provider   string
	model      string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "roadmap",
		Short:         "Internship roadmap planner",
		Long:          "Roadmap turns a student's background, goals and constraints into a four-phase internship preparation plan with tasks, resources and badges.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a JSON config file")
	pf.StringVar(&opts.logMode, "log-mode", "", "Log mode: dev or prod (overrides LOG_MODE)")
	pf.StringVar(&opts.provider, "provider", "", "Generative provider: openai or gemini")
	pf.StringVar(&opts.model, "model", "", "Model name override")

	root.AddCommand(
		newGenerateCmd(opts),
		newServeCmd(opts),
		newPromptCmd(),
		newValidateCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
