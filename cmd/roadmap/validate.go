package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jonathan/roadmap-planner/internal/schemas"
)

func newValidateCmd() *cobra.Command {
	var printSchema bool

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check roadmap JSON files against the roadmap schema",
		Long: `Validate checks that each file holds a single roadmap object (phases,
resources and badges arrays) that the generator would accept. Use --schema to
print the JSON Schema itself.`,
		Example: `  roadmap generate -p me.yaml -o plan.json && roadmap validate plan.json
  roadmap validate --schema > roadmap.schema.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printSchema {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), schemas.RoadmapSchema())
				return err
			}
			if len(args) == 0 {
				return fmt.Errorf("at least one file is required")
			}
			return runValidate(cmd.OutOrStdout(), args)
		},
	}
	cmd.Flags().BoolVar(&printSchema, "schema", false, "Print the roadmap JSON Schema and exit")
	return cmd
}

func runValidate(w io.Writer, paths []string) error {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed, color.Bold).SprintFunc()

	failed := 0
	for _, path := range paths {
		err := schemas.ValidateRoadmapFile(path)
		if err == nil {
			fmt.Fprintf(w, "%s %s\n", ok("✓"), path)
			continue
		}
		failed++

		var vErr *schemas.ValidationError
		if !errors.As(err, &vErr) {
			fmt.Fprintf(w, "%s %s: %v\n", bad("✗"), path, err)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", bad("✗"), path)
		for _, fe := range vErr.Errors {
			fmt.Fprintf(w, "    %s: %s\n", fe.Field, fe.Message)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(paths))
	}
	return nil
}
