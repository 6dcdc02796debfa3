package forecast

import (
	"github.com/okian/motorcast/internal/domain/analytics"
	"github.com/okian/motorcast/internal/domain/catalog"
	"github.com/okian/motorcast/internal/domain/model"
	"github.com/okian/motorcast/internal/domain/narrative"
)

// Narrative thresholds.
const (
	lowSkillAverage   = 2.5
	minHistory        = 3
	stagnantLevelCeil = 4.0
	maxStagnantSkills = 2
	highVelocitySlope = 0.2
	focusScoreCeil    = 3.5
	maxFocusAreas     = 3
)

// Build forecasts a learner's progress from history, oldest record first.
// summary may be nil. Build never fails and never mutates its inputs.
func (b *Builder) Build(history []model.EvaluationRecord, summary *model.ModelQualitySummary, learnerName string) Result {
	accuracy := summary.EffectiveAccuracy()

	averages := model.RecordAverages(history)
	current := 0.0
	if len(averages) > 0 {
		current = averages[len(averages)-1]
	}
	overallTrend := analytics.EstimateTrend(averages)

	skills := make([]SkillForecast, catalog.SkillCount)
	for _, s := range catalog.Skills() {
		skills[s] = skillForecast(b.catalog, history, s, accuracy)
	}

	need := narrative.SupportBand(current)
	name := narrative.Params{Name: learnerName}
	focus := focusAreas(skills)

	return Result{
		LearnerName:     learnerName,
		Evaluations:     len(history),
		ModelConfidence: accuracy / 100,
		Overall: Overall{
			CurrentAverage: current,
			Level:          analytics.Classify(current),
			Trend:          overallTrend,
			Predictions:    project(current, overallTrend.Slope, accuracy),
		},
		Skills:        skills,
		RiskFactors:   risks(learnerName, len(history), overallTrend, skills),
		Opportunities: opportunities(learnerName, overallTrend, skills),
		Recommendation: Recommendation{
			SupportNeed: string(need),
			Message:     narrative.Format(narrative.SupportMessage(need), name),
		},
		FocusAreas: focus,
		Tips:       tips(learnerName, focus),
	}
}

func risks(name string, evaluations int, overall analytics.Trend, skills []SkillForecast) []string {
	var out []string
	low, stagnant := 0, 0
	for _, sk := range skills {
		if sk.Average < lowSkillAverage {
			low++
		}
		if sk.Trend.Label == analytics.TrendStable && sk.CurrentScore < stagnantLevelCeil {
			stagnant++
		}
	}

	if low > 0 {
		out = append(out, narrative.Format(narrative.RiskSkillsBelowAverage, narrative.Params{Name: name, Count: low}))
	}
	if overall.Slope < 0 {
		out = append(out, narrative.Format(narrative.RiskNegativeTrend, narrative.Params{Name: name}))
	}
	if evaluations < minHistory {
		out = append(out, narrative.Format(narrative.RiskInsufficientHistory, narrative.Params{Name: name}))
	}
	if stagnant > maxStagnantSkills {
		out = append(out, narrative.Format(narrative.RiskStagnantSkills, narrative.Params{Name: name}))
	}
	return orFallback(out, narrative.NoSignificantRisk, name)
}

func opportunities(name string, overall analytics.Trend, skills []SkillForecast) []string {
	var out []string
	improving, high := 0, 0
	for _, sk := range skills {
		if sk.Trend.Label.Improving() {
			improving++
		}
		if sk.ImprovementPotential == PotentialHigh {
			high++
		}
	}

	if improving > 0 {
		out = append(out, narrative.Format(narrative.OpportunityImproving, narrative.Params{Name: name, Count: improving}))
	}
	if high > 0 {
		out = append(out, narrative.Format(narrative.OpportunityHighPotential, narrative.Params{Name: name, Count: high}))
	}
	if overall.Slope > highVelocitySlope {
		out = append(out, narrative.Format(narrative.OpportunityVelocity, narrative.Params{Name: name}))
	}
	return orFallback(out, narrative.ContinueCurrentPlan, name)
}

// focusAreas returns up to three skill labels needing attention, in catalog order.
func focusAreas(skills []SkillForecast) []string {
	out := make([]string, 0, maxFocusAreas)
	for _, sk := range skills {
		if len(out) == maxFocusAreas {
			break
		}
		if sk.CurrentScore < focusScoreCeil || sk.ImprovementPotential == PotentialHigh {
			out = append(out, sk.Label)
		}
	}
	return out
}

func tips(name string, focus []string) []string {
	out := make([]string, 0, len(focus))
	for _, label := range focus {
		out = append(out, narrative.Format(narrative.FocusTip, narrative.Params{Name: name, Skill: label}))
	}
	return orFallback(out, narrative.ContinueCurrentPlan, name)
}

func orFallback(list []string, fallback, name string) []string {
	if len(list) > 0 {
		return list
	}
	return []string{narrative.Format(fallback, narrative.Params{Name: name})}
}
