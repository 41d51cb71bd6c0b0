package fallback

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/roadmap-planner/internal/types"
)

var startDateLayouts = []string{"2006-01-02", "2006-01"}

var seasonLabels = [phaseCount]string{"August", "Fall", "Winter", "Spring"}

// periods labels each phase. A parseable start date yields consecutive
// three-month ranges; otherwise fixed season labels are used.
func periods(p types.Profile) [phaseCount]string {
	var out [phaseCount]string

	if start, ok := parseStartDate(p.StartDate); ok {
		for i := range out {
			from := start.AddDate(0, 3*i, 0)
			to := from.AddDate(0, 2, 0)
			out[i] = fmt.Sprintf("%s – %s", from.Format("Jan 2006"), to.Format("Jan 2006"))
		}
		return out
	}

	out = seasonLabels
	if strings.Contains(strings.ToLower(p.EducationLevel), "high school") {
		out[0] = "Summer"
	}
	return out
}

func parseStartDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
