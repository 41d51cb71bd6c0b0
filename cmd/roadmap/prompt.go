package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jonathan/roadmap-planner/internal/profile"
	"github.com/jonathan/roadmap-planner/internal/roadmap"
)

func newPromptCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the request that would be sent to the model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrompt(cmd.OutOrStdout(), path)
		},
	}
	cmd.Flags().StringVarP(&path, "profile", "p", "", "Profile file")
	if err := cmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	return cmd
}

func runPrompt(w io.Writer, path string) error {
	p, err := profile.Load(path)
	if err != nil {
		return err
	}

	heading := color.New(color.FgCyan, color.Bold).SprintFunc()
	prompt := roadmap.ComposePrompt(p)
	fmt.Fprintln(w, heading("── system ──"))
	fmt.Fprintln(w, prompt.System)
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("── user ──"))
	fmt.Fprintln(w, prompt.User)
	return nil
}
