// Package suggest ranks a learner's skills and turns the weakest ones into
// concrete activity suggestions and a weekday practice plan.
package suggest

import (
	"fmt"
	"sort"

	"github.com/okian/motorcast/internal/domain/analytics"
	"github.com/okian/motorcast/internal/domain/catalog"
	"github.com/okian/motorcast/internal/domain/model"
	"github.com/okian/motorcast/internal/domain/narrative"
)

const (
	maxSuggestions   = 4
	exerciseRotation = 2
	fallbackDuration = "15 min"
)

// Weekdays labels the days of the weekly plan.
var Weekdays = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Suggestion is one prioritized skill with its activities.
type Suggestion struct {
	Priority         int                `json:"priority"`
	Skill            catalog.Skill      `json:"skill"`
	Label            string             `json:"label"`
	Type             string             `json:"type"`
	Description      string             `json:"description"`
	Benefits         []string           `json:"benefits"`
	Exercises        []catalog.Exercise `json:"exercises"`
	AverageScore     float64            `json:"average_score"`
	Trend            analytics.Trend    `json:"trend"`
	ExpectedProgress string             `json:"expected_progress"`
}

// PlanDay is one entry of the weekly plan.
type PlanDay struct {
	Day      string `json:"day"`
	Activity string `json:"activity"`
	Duration string `json:"duration"`
}

// Set is the full suggestion output for a learner.
type Set struct {
	LearnerName     string       `json:"learner_name"`
	ModelConfidence float64      `json:"model_confidence"`
	OverallAverage  float64      `json:"overall_average"`
	Band            string       `json:"band"`
	Suggestions     []Suggestion `json:"suggestions"`
	WeeklyPlan      []PlanDay    `json:"weekly_plan"`
	Recommendation  string       `json:"recommendation"`
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithCatalog substitutes the exercise catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Synthesizer) {
		if c != nil {
			s.catalog = c
		}
	}
}

// Synthesizer builds suggestion sets. It is safe for concurrent use.
type Synthesizer struct {
	catalog *catalog.Catalog
}

// New returns a Synthesizer using the default catalog unless overridden.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{catalog: catalog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type skillStat struct {
	skill   catalog.Skill
	average float64
	trend   analytics.Trend
}

// Build ranks skills by historical average, weakest first, and builds
// suggestions for the first four. summary may be nil. Build never fails and
// never mutates its inputs.
func (s *Synthesizer) Build(history []model.EvaluationRecord, summary *model.ModelQualitySummary, learnerName string, style model.LearningStyle) Set {
	accuracy := summary.EffectiveAccuracy()

	stats := make([]skillStat, 0, catalog.SkillCount)
	averages := make([]float64, 0, catalog.SkillCount)
	for _, sk := range catalog.Skills() {
		series := model.SkillSeries(history, int(sk))
		avg := analytics.Mean(series)
		stats = append(stats, skillStat{skill: sk, average: avg, trend: analytics.EstimateTrend(series)})
		averages = append(averages, avg)
	}
	// Stable: equal averages keep catalog order.
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].average < stats[j].average })

	clause := s.catalog.StyleClause(style)
	suggestions := make([]Suggestion, 0, maxSuggestions)
	for i, st := range stats[:maxSuggestions] {
		suggestions = append(suggestions, s.suggestion(i+1, st, learnerName, clause))
	}

	overall := analytics.Mean(averages)
	band := narrative.OverallBand(overall)
	return Set{
		LearnerName:     learnerName,
		ModelConfidence: accuracy / 100,
		OverallAverage:  overall,
		Band:            band.String(),
		Suggestions:     suggestions,
		WeeklyPlan:      weeklyPlan(suggestions),
		Recommendation: narrative.Format(narrative.OverallTemplate(band), narrative.Params{
			Name:    learnerName,
			Average: overall,
		}),
	}
}

func (s *Synthesizer) suggestion(priority int, st skillStat, learnerName, clause string) Suggestion {
	entry := s.catalog.Entry(st.skill)
	return Suggestion{
		Priority: priority,
		Skill:    st.skill,
		Label:    entry.Label,
		Type:     entry.Archetype.Type,
		Description: narrative.Format(entry.Archetype.Description, narrative.Params{
			Name:  learnerName,
			Skill: entry.Label,
		}) + clause,
		Benefits:         entry.Archetype.Benefits,
		Exercises:        entry.Exercises,
		AverageScore:     st.average,
		Trend:            st.trend,
		ExpectedProgress: narrative.ExpectedProgress(st.trend.Label),
	}
}

// weeklyPlan cycles through the suggestions for each weekday and alternates
// between the first two exercises of each.
func weeklyPlan(suggestions []Suggestion) []PlanDay {
	plan := make([]PlanDay, 0, len(Weekdays))
	if len(suggestions) == 0 {
		return plan
	}
	for i, day := range Weekdays {
		sg := suggestions[i%len(suggestions)]
		n := min(len(sg.Exercises), exerciseRotation)
		if n == 0 {
			plan = append(plan, PlanDay{
				Day:      day,
				Activity: fmt.Sprintf("Free practice (%s)", sg.Label),
				Duration: fallbackDuration,
			})
			continue
		}
		ex := sg.Exercises[i%n]
		plan = append(plan, PlanDay{
			Day:      day,
			Activity: fmt.Sprintf("%s (%s)", ex.Name, sg.Label),
			Duration: ex.Duration,
		})
	}
	return plan
}
