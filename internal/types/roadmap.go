package types

// Task is a single actionable item inside a phase
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes,omitempty"`
	Link      string `json:"link,omitempty"`
}

// Phase is a chronological block of the plan. Order is significant.
type Phase struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Period     string `json:"period"`
	Color      string `json:"color"`
	IsExpanded bool   `json:"isExpanded"`
	Tasks      []Task `json:"tasks"`
}

// Resource is a curated link recommended by the plan
type Resource struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	IsBookmarked bool   `json:"isBookmarked"`
	IsCustom     bool   `json:"isCustom,omitempty"`
	IsFeatured   bool   `json:"isFeatured,omitempty"`
}

// Badge is an achievement the user can earn while following the plan
type Badge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
	EarnedDate  string `json:"earnedDate,omitempty"`
	Points      int    `json:"points"`
}

// GenerationResult is the output of one roadmap generation
type GenerationResult struct {
	Phases    []Phase    `json:"phases"`
	Resources []Resource `json:"resources"`
	Badges    []Badge    `json:"badges"`
}

// Counts returns the number of phases, tasks, resources and badges
func (r GenerationResult) Counts() (phases, tasks, resources, badges int) {
	for _, p := range r.Phases {
		tasks += len(p.Tasks)
	}
	return len(r.Phases), tasks, len(r.Resources), len(r.Badges)
}

// TotalPoints sums the points of every badge in the result
func (r GenerationResult) TotalPoints() int {
	total := 0
	for _, b := range r.Badges {
		total += b.Points
	}
	return total
}
