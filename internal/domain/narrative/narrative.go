// Package narrative turns the engines' numeric decisions into text. Band
// selection is kept apart from the templates so either side can change
// without touching the other.
package narrative

import (
	"strconv"
	"strings"

	"github.com/okian/motorcast/internal/domain/analytics"
)

// Params are the values a template may reference.
type Params struct {
	Name    string
	Count   int
	Skill   string
	Average float64
}

// Format substitutes {name}, {count}, {skill} and {average} in template.
// Averages are rendered with one decimal. Unknown placeholders are left as is.
func Format(template string, p Params) string {
	r := strings.NewReplacer(
		"{name}", p.Name,
		"{count}", strconv.Itoa(p.Count),
		"{skill}", p.Skill,
		"{average}", strconv.FormatFloat(p.Average, 'f', 1, 64),
	)
	return r.Replace(template)
}

// Risk and opportunity sentences.
const (
	RiskSkillsBelowAverage   = "{name} has {count} skills below a 2.5 average"
	RiskNegativeTrend        = "{name} shows a negative overall trend"
	RiskInsufficientHistory  = "{name} has insufficient evaluation history (fewer than 3 evaluations)"
	RiskStagnantSkills       = "{name} has multiple stagnant skills"
	NoSignificantRisk        = "{name} shows no significant risk factors"
	OpportunityImproving     = "{name} is improving in {count} skills"
	OpportunityHighPotential = "{name} has {count} skills with high improvement potential"
	OpportunityVelocity      = "{name} shows above-average learning velocity"
	ContinueCurrentPlan      = "{name} should continue with the current plan"
	FocusTip                 = "{name} can strengthen {skill} with short, frequent practice sessions"
)

// Expected progress sentences, one per trend direction.
const (
	ProgressImproving = "Continuous improvement expected"
	ProgressStable    = "Progress expected in 2-4 weeks with focused intervention"
	ProgressDecline   = "Priority area: daily practice recommended"
)

// ExpectedProgress picks the progress sentence for a skill trend.
func ExpectedProgress(label analytics.TrendLabel) string {
	switch {
	case label.Improving():
		return ProgressImproving
	case label == analytics.TrendStable:
		return ProgressStable
	default:
		return ProgressDecline
	}
}
