// Package types provides type definitions for structured data used throughout the roadmap planner.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Profile is the user-supplied description of background, goals and constraints.
// Detailed fields take precedence over their legacy counterparts; the resolved
// accessors below implement that precedence.
type Profile struct {
	Name               string   `json:"name" yaml:"name"`
	Email              string   `json:"email" yaml:"email" validate:"omitempty,email"`
	EducationLevel     string   `json:"educationLevel" yaml:"educationLevel"`
	Major              string   `json:"major" yaml:"major"`
	CurrentSkills      []string `json:"currentSkills" yaml:"currentSkills" validate:"dive,required"`
	TargetRole         string   `json:"targetRole" yaml:"targetRole" validate:"required_without=SpecificRole"`
	TimeCommitment     string   `json:"timeCommitment" yaml:"timeCommitment"`
	PreferredCompanies []string `json:"preferredCompanies" yaml:"preferredCompanies" validate:"dive,required"`
	Experience         string   `json:"experience" yaml:"experience"`
	Goals              []string `json:"goals" yaml:"goals" validate:"dive,required"`

	// Detailed questionnaire fields
	StartDate           string   `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	InternshipStartDate string   `json:"internshipStartDate,omitempty" yaml:"internshipStartDate,omitempty"`
	TechnicalLevel      string   `json:"technicalLevel,omitempty" yaml:"technicalLevel,omitempty"`
	KnownLanguages      []string `json:"knownLanguages,omitempty" yaml:"knownLanguages,omitempty" validate:"dive,required"`
	SpecificRole        string   `json:"specificRole,omitempty" yaml:"specificRole,omitempty"`
	TargetCompanies     []string `json:"targetCompanies,omitempty" yaml:"targetCompanies,omitempty" validate:"dive,required"`
	WeeklyHours         string   `json:"weeklyHours,omitempty" yaml:"weeklyHours,omitempty"`
	ExamPeriods         string   `json:"examPeriods,omitempty" yaml:"examPeriods,omitempty"`
	HasResumeLinkedIn   *bool    `json:"hasResumeLinkedIn,omitempty" yaml:"hasResumeLinkedIn,omitempty"`
	HasPortfolioGitHub  *bool    `json:"hasPortfolioGitHub,omitempty" yaml:"hasPortfolioGitHub,omitempty"`
}

// Skills returns KnownLanguages when set, otherwise CurrentSkills.
func (p Profile) Skills() []string {
	if len(p.KnownLanguages) > 0 {
		return p.KnownLanguages
	}
	return p.CurrentSkills
}

// Role returns SpecificRole when set, otherwise TargetRole.
func (p Profile) Role() string {
	return firstNonEmpty(p.SpecificRole, p.TargetRole)
}

// Companies returns TargetCompanies when set, otherwise PreferredCompanies.
func (p Profile) Companies() []string {
	if len(p.TargetCompanies) > 0 {
		return p.TargetCompanies
	}
	return p.PreferredCompanies
}

// Level returns TechnicalLevel when set, otherwise Experience.
func (p Profile) Level() string {
	return firstNonEmpty(p.TechnicalLevel, p.Experience)
}

// Hours returns WeeklyHours when set, otherwise TimeCommitment.
func (p Profile) Hours() string {
	return firstNonEmpty(p.WeeklyHours, p.TimeCommitment)
}

// HasSkill reports whether any resolved skill equals one of names (case-insensitive).
func (p Profile) HasSkill(names ...string) bool {
	return containsAny(p.Skills(), names)
}

// HasGoal reports whether goal was selected (case-insensitive).
func (p Profile) HasGoal(goal string) bool {
	return containsAny(p.Goals, []string{goal})
}

// HasCompany reports whether company is among the resolved companies (case-insensitive).
func (p Profile) HasCompany(company string) bool {
	return containsAny(p.Companies(), []string{company})
}

// RoleContains reports whether the resolved role contains any of the fragments (case-insensitive).
func (p Profile) RoleContains(fragments ...string) bool {
	role := strings.ToLower(p.Role())
	for _, f := range fragments {
		if f != "" && strings.Contains(role, strings.ToLower(f)) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func containsAny(set []string, names []string) bool {
	for _, s := range set {
		s = strings.TrimSpace(s)
		for _, n := range names {
			if strings.EqualFold(s, n) {
				return true
			}
		}
	}
	return false
}
