// Package fallback builds a complete roadmap from a Profile without any
// external calls. Output depends only on the Profile: no clock, randomness or I/O.
package fallback

import (
	"fmt"

	"github.com/jonathan/roadmap-planner/internal/types"
)

const phaseCount = 4

type phaseLayout struct {
	title func(types.Profile) string
	slots []slot
}

func fixedTitle(s string) func(types.Profile) string {
	return func(types.Profile) string { return s }
}

var layout = [phaseCount]phaseLayout{
	{
		title: func(p types.Profile) string {
			if beginner(p) {
				return "Foundation Building"
			}
			return "Skill Enhancement"
		},
		slots: []slot{slotProfiles, slotRemedial, slotLearning, slotEvents, slotResearch},
	},
	{
		title: fixedTitle("Skill Development & Projects"),
		slots: []slot{slotCommunity, slotProjects, slotPractice, slotExtras},
	},
	{
		title: fixedTitle("Application Season"),
		slots: []slot{slotCapstone, slotAdvanced, slotApplications, slotInterviews},
	},
	{
		title: fixedTitle("Backup Plans & Growth"),
		slots: []slot{slotBackup, slotContribution, slotReflection, slotMentorship},
	},
}

// Generate returns the rule-based roadmap for p. It always yields exactly
// four phases, every one with at least one task.
func Generate(p types.Profile) types.GenerationResult {
	bySlot := make(map[slot][]string)
	var resources []types.Resource
	var badges []types.Badge

	for _, r := range rules {
		if !r.applies(p) {
			continue
		}
		c := r.build(p)
		for s, texts := range c.tasks {
			bySlot[s] = append(bySlot[s], texts...)
		}
		resources = append(resources, c.resources...)
		badges = append(badges, c.badges...)
	}

	bands := periods(p)
	phases := make([]types.Phase, 0, phaseCount)
	for i, l := range layout {
		n := i + 1
		var tasks []types.Task
		for _, s := range l.slots {
			for _, text := range bySlot[s] {
				tasks = append(tasks, types.Task{
					ID:   fmt.Sprintf("task-%d-%d", n, len(tasks)+1),
					Text: text,
				})
			}
		}
		phases = append(phases, types.Phase{
			ID:         fmt.Sprintf("phase-%d", n),
			Title:      l.title(p),
			Period:     bands[i],
			Color:      PhaseColor(i),
			IsExpanded: i == 0,
			Tasks:      tasks,
		})
	}

	return types.GenerationResult{
		Phases:    phases,
		Resources: uniqueResources(resources),
		Badges:    uniqueBadges(badges),
	}
}

// AppliedRules lists the names of the rules that fire for p, in evaluation order.
func AppliedRules(p types.Profile) []string {
	var names []string
	for _, r := range rules {
		if r.applies(p) {
			names = append(names, r.name)
		}
	}
	return names
}

func uniqueResources(in []types.Resource) []types.Resource {
	seen := make(map[string]bool, len(in))
	out := make([]types.Resource, 0, len(in))
	for _, r := range in {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}

func uniqueBadges(in []types.Badge) []types.Badge {
	seen := make(map[string]bool, len(in))
	out := make([]types.Badge, 0, len(in))
	for _, b := range in {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}
