// Package render prints roadmaps for terminal readers.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jonathan/roadmap-planner/internal/types"
)

var (
	headerColor   = color.New(color.FgCyan, color.Bold).SprintFunc()
	phaseColor    = color.New(color.FgMagenta, color.Bold).SprintFunc()
	categoryColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	pointsColor   = color.New(color.FgGreen).SprintFunc()
	dimColor      = color.New(color.Faint).SprintFunc()
)

const rule = "═══════════════════════════════════════════════════"

// Text writes r as a readable plan. title is printed in the header; an empty
// title prints "Your Internship Roadmap".
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  Your Internship Roadmap
//	  4 phases · 42 tasks · 30 resources · 22 badges
//	═══════════════════════════════════════════════════
//
//	1. Foundation Building (August)
//	   [ ] Create professional GitHub profile with README
//	   ...
func Text(w io.Writer, title string, r types.GenerationResult) error {
	if title == "" {
		title = "Your Internship Roadmap"
	}
	bw := bufio.NewWriter(w)

	phases, tasks, resources, badges := r.Counts()
	fmt.Fprintln(bw, headerColor(rule))
	fmt.Fprintln(bw, headerColor("  "+title))
	fmt.Fprintf(bw, "  %d phases · %d tasks · %d resources · %d badges\n", phases, tasks, resources, badges)
	fmt.Fprintln(bw, headerColor(rule))

	for i, p := range r.Phases {
		fmt.Fprintln(bw)
		header := fmt.Sprintf("%d. %s", i+1, p.Title)
		if p.Period != "" {
			header += " (" + p.Period + ")"
		}
		fmt.Fprintln(bw, phaseColor(header))
		for _, t := range p.Tasks {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			fmt.Fprintf(bw, "   %s %s\n", box, t.Text)
			if t.Notes != "" {
				fmt.Fprintf(bw, "       %s\n", dimColor(t.Notes))
			}
		}
	}

	if len(r.Resources) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, headerColor("Resources"))
		for _, group := range groupByCategory(r.Resources) {
			fmt.Fprintf(bw, "  %s\n", categoryColor(group.category))
			for _, res := range group.items {
				fmt.Fprintf(bw, "   • %s %s\n", res.Title, dimColor(res.URL))
			}
		}
	}

	if len(r.Badges) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, headerColor("Badges"))
		for _, b := range r.Badges {
			fmt.Fprintf(bw, "   ★ %-28s %s  %s\n", b.Title, pointsColor(fmt.Sprintf("%4d pts", b.Points)), b.Description)
		}
		fmt.Fprintf(bw, "   %s\n", pointsColor(fmt.Sprintf("Total: %d pts", r.TotalPoints())))
	}

	return bw.Flush()
}

type categoryGroup struct {
	category string
	items    []types.Resource
}

// groupByCategory keeps categories in order of first appearance.
func groupByCategory(resources []types.Resource) []categoryGroup {
	var groups []categoryGroup
	index := map[string]int{}
	for _, r := range resources {
		cat := strings.TrimSpace(r.Category)
		if cat == "" {
			cat = "Other"
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, categoryGroup{category: cat})
		}
		groups[i].items = append(groups[i].items, r)
	}
	return groups
}
