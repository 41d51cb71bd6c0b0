package roadmap

import (
	"fmt"
	"strings"

	"github.com/jonathan/roadmap-planner/internal/llm"
	"github.com/jonathan/roadmap-planner/internal/prompts"
	"github.com/jonathan/roadmap-planner/internal/types"
)

const notSpecified = "Not specified"

// Prompt is the two-message chat request sent to the generative service
type Prompt struct {
	System string
	User   string
}

// Messages returns the system message followed by the user message.
func (p Prompt) Messages() []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: p.System},
		{Role: llm.RoleUser, Content: p.User},
	}
}

// ComposePrompt renders the roadmap request for p. Every profile field gets a
// labeled line; empty fields read "Not specified". Detailed questionnaire
// answers take precedence over the legacy onboarding fields.
func ComposePrompt(p types.Profile) Prompt {
	data := map[string]string{
		"StartDate":           orNotSpecified(p.StartDate),
		"InternshipStartDate": orNotSpecified(p.InternshipStartDate),
		"Level":               orNotSpecified(p.Level()),
		"Skills":              joinOrNotSpecified(p.Skills()),
		"Role":                orNotSpecified(p.Role()),
		"Companies":           joinOrNotSpecified(p.Companies()),
		"Hours":               orNotSpecified(p.Hours()),
		"ExamPeriods":         orNotSpecified(p.ExamPeriods),
		"HasResumeLinkedIn":   yesNo(p.HasResumeLinkedIn),
		"HasPortfolioGitHub":  yesNo(p.HasPortfolioGitHub),
		"Name":                orNotSpecified(p.Name),
		"EducationLevel":      orNotSpecified(p.EducationLevel),
		"Major":               orNotSpecified(p.Major),
		"Goals":               joinOrNotSpecified(p.Goals),
	}

	user, err := prompts.Render(prompts.RoadmapFile, "user", data)
	if err != nil {
		panic(fmt.Sprintf("failed to render prompt: %v", err))
	}
	return Prompt{
		System: prompts.MustGet(prompts.RoadmapFile, "system"),
		User:   user,
	}
}

func orNotSpecified(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return notSpecified
}

func joinOrNotSpecified(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return notSpecified
	}
	return strings.Join(kept, ", ")
}

func yesNo(b *bool) string {
	switch {
	case b == nil:
		return notSpecified
	case *b:
		return "Yes"
	default:
		return "No"
	}
}
