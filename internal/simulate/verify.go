package simulate

import (
	"fmt"

	"github.com/okian/motorcast/internal/domain/analytics"
	"github.com/okian/motorcast/internal/domain/catalog"
	"github.com/okian/motorcast/internal/domain/forecast"
)

const maxFocusAreas = 3

// Verify checks the invariants every forecast must hold and returns one
// message per violation.
func Verify(res *forecast.Result) []string {
	var out []string
	add := func(format string, args ...any) { out = append(out, fmt.Sprintf(format, args...)) }

	if res.ModelConfidence < 0 || res.ModelConfidence > 1 {
		add("model confidence %.3f outside [0,1]", res.ModelConfidence)
	}
	out = append(out, verifyPredictions("overall", res.Overall.Predictions)...)

	if len(res.Skills) != catalog.SkillCount {
		add("expected %d skill forecasts, got %d", catalog.SkillCount, len(res.Skills))
	}
	for _, sk := range res.Skills {
		out = append(out, verifyPredictions(sk.Skill.String(), sk.Predictions)...)
		if sk.Confidence < 0 || sk.Confidence > 1 {
			add("%s: confidence %.3f outside [0,1]", sk.Skill, sk.Confidence)
		}
	}

	if len(res.FocusAreas) > maxFocusAreas {
		add("%d focus areas, at most %d allowed", len(res.FocusAreas), maxFocusAreas)
	}
	for name, list := range map[string][]string{
		"risk factors":  res.RiskFactors,
		"opportunities": res.Opportunities,
		"tips":          res.Tips,
	} {
		if len(list) == 0 {
			add("%s list is empty", name)
		}
	}
	return out
}

func verifyPredictions(scope string, preds []analytics.Prediction) []string {
	var out []string
	if len(preds) != len(forecast.Horizons) {
		return append(out, fmt.Sprintf("%s: expected %d predictions, got %d", scope, len(forecast.Horizons), len(preds)))
	}
	for i, p := range preds {
		lo, hi := p.ConfidenceInterval[0], p.ConfidenceInterval[1]
		switch {
		case p.HorizonMonths != forecast.Horizons[i].Months:
			out = append(out, fmt.Sprintf("%s: prediction %d has horizon %d", scope, i, p.HorizonMonths))
		case !inScale(p.ExpectedAverage):
			out = append(out, fmt.Sprintf("%s: %dm expected %.3f outside [1,5]", scope, p.HorizonMonths, p.ExpectedAverage))
		case !inScale(lo) || !inScale(hi):
			out = append(out, fmt.Sprintf("%s: %dm interval [%.3f,%.3f] outside [1,5]", scope, p.HorizonMonths, lo, hi))
		case lo > hi:
			out = append(out, fmt.Sprintf("%s: %dm interval [%.3f,%.3f] inverted", scope, p.HorizonMonths, lo, hi))
		case p.Likelihood < 0 || p.Likelihood > 1:
			out = append(out, fmt.Sprintf("%s: %dm likelihood %.3f outside [0,1]", scope, p.HorizonMonths, p.Likelihood))
		}
	}
	return out
}

func inScale(v float64) bool {
	return v >= analytics.MinScore && v <= analytics.MaxScore
}
