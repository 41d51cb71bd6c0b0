// Package observability provides formatted diagnostics for verbose CLI mode.
// Output goes to stderr so it never mixes with the roadmap on stdout.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/roadmap-planner/internal/fallback"
	"github.com/jonathan/roadmap-planner/internal/roadmap"
	"github.com/jonathan/roadmap-planner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// list renders up to maxItemsToShow values joined by commas
func list(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	shown := values
	if len(shown) > maxItemsToShow {
		shown = shown[:maxItemsToShow]
	}
	s := strings.Join(shown, ", ")
	if extra := len(values) - len(shown); extra > 0 {
		s += fmt.Sprintf(" (+%d more)", extra)
	}
	return s
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// PrintProfile outputs the resolved view of a profile: detailed answers win
// over their legacy counterparts.
func (p *Printer) PrintProfile(label string, profile types.Profile) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:       %s\n", orDash(profile.Role())))
	sb.WriteString(fmt.Sprintf("Level:      %s\n", orDash(profile.Level())))
	sb.WriteString(fmt.Sprintf("Hours:      %s\n", orDash(profile.Hours())))
	sb.WriteString(fmt.Sprintf("Skills:     %s\n", list(profile.Skills())))
	sb.WriteString(fmt.Sprintf("Companies:  %s\n", list(profile.Companies())))
	sb.WriteString(fmt.Sprintf("Goals:      %s\n", list(profile.Goals)))
	if profile.StartDate != "" {
		sb.WriteString(fmt.Sprintf("Starts:     %s\n", profile.StartDate))
	}

	p.printBox("PROFILE "+label, sb.String())
}

// PrintOutcome outputs how a roadmap was produced. For fallback results it
// lists the rules that contributed.
func (p *Printer) PrintOutcome(label string, profile types.Profile, o roadmap.Outcome) {
	phases, tasks, resources, badges := o.Result.Counts()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:     %s\n", o.Source))
	sb.WriteString(fmt.Sprintf("Duration:   %s\n", o.Duration.Round(time.Millisecond)))
	if o.Err != nil {
		sb.WriteString(fmt.Sprintf("Failed at:  %s (%s)\n", orDash(string(o.Stage)), roadmap.ErrorKind(o.Err)))
		sb.WriteString(fmt.Sprintf("Error:      %s\n", o.Err))
	}
	sb.WriteString(fmt.Sprintf("Contents:   %d phases, %d tasks, %d resources, %d badges\n", phases, tasks, resources, badges))
	sb.WriteString(fmt.Sprintf("Points:     %d\n", o.Result.TotalPoints()))

	if o.Source == roadmap.SourceFallback {
		rules := fallback.AppliedRules(profile)
		sb.WriteString(fmt.Sprintf("\nRules applied (%d):\n", len(rules)))
		for i := 0; i < len(rules); i += 3 {
			end := min(i+3, len(rules))
			sb.WriteString("  " + strings.Join(rules[i:end], ", ") + "\n")
		}
	}

	p.printBox("OUTCOME "+label, sb.String())
}
