// Package forecast builds progress forecasts from a learner's evaluation
// history: overall and per-skill trends, projections at fixed horizons, and
// the risk, opportunity and support narrative derived from them.
package forecast

import (
	"github.com/okian/motorcast/internal/domain/analytics"
	"github.com/okian/motorcast/internal/domain/catalog"
	"github.com/okian/motorcast/internal/domain/model"
)

// Potential is a coarse estimate of how much room a skill has to grow.
type Potential string

// Improvement potentials.
const (
	PotentialHigh   Potential = "high"
	PotentialMedium Potential = "medium"
	PotentialLow    Potential = "low"
)

// Overall summarizes the per-record average series.
type Overall struct {
	CurrentAverage float64                `json:"current_average"`
	Level          analytics.Level        `json:"level"`
	Trend          analytics.Trend        `json:"trend"`
	Predictions    []analytics.Prediction `json:"predictions"`
}

// SkillForecast is the forecast for one tracked skill.
type SkillForecast struct {
	Skill                catalog.Skill          `json:"skill"`
	Label                string                 `json:"label"`
	CurrentScore         float64                `json:"current_score"`
	Average              float64                `json:"average"`
	Samples              int                    `json:"samples"`
	Level                analytics.Level        `json:"level"`
	Trend                analytics.Trend        `json:"trend"`
	Predictions          []analytics.Prediction `json:"predictions"`
	ImprovementPotential Potential              `json:"improvement_potential"`
	Confidence           float64                `json:"confidence"`
}

// Recommendation is the single priority recommendation of a forecast.
type Recommendation struct {
	SupportNeed string `json:"support_need"`
	Message     string `json:"message"`
}

// Result is a complete forecast. Every list is freshly allocated.
type Result struct {
	LearnerName     string          `json:"learner_name"`
	Evaluations     int             `json:"evaluations"`
	ModelConfidence float64         `json:"model_confidence"`
	Overall         Overall         `json:"overall"`
	Skills          []SkillForecast `json:"skills"`
	RiskFactors     []string        `json:"risk_factors"`
	Opportunities   []string        `json:"opportunities"`
	Recommendation  Recommendation  `json:"recommendation"`
	FocusAreas      []string        `json:"focus_areas"`
	Tips            []string        `json:"tips"`
}

// Option configures a Builder.
type Option func(*Builder)

// WithCatalog substitutes the skill catalog used for labels.
func WithCatalog(c *catalog.Catalog) Option {
	return func(b *Builder) {
		if c != nil {
			b.catalog = c
		}
	}
}

// Builder produces forecasts. It holds no mutable state and is safe for
// concurrent use.
type Builder struct {
	catalog *catalog.Catalog
}

// New returns a Builder using the default catalog unless overridden.
func New(opts ...Option) *Builder {
	b := &Builder{catalog: catalog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Horizon is a projection offset with its fixed likelihood decay.
type Horizon struct {
	Months int
	Decay  float64
}

// Horizons are the projection offsets used by every forecast.
var Horizons = [...]Horizon{
	{Months: 1, Decay: 0.9},
	{Months: 3, Decay: 0.8},
	{Months: 6, Decay: 0.7},
}

func project(current, slope, accuracy float64) []analytics.Prediction {
	out := make([]analytics.Prediction, len(Horizons))
	for i, h := range Horizons {
		p := analytics.Project(current, slope, h.Months, accuracy)
		p.Likelihood = accuracy / 100 * h.Decay
		out[i] = p
	}
	return out
}

// potential labels a skill from its current score and slope.
func potential(current, slope float64) Potential {
	switch {
	case current < 3 && slope > 0:
		return PotentialHigh
	case current < 4 && slope >= 0:
		return PotentialMedium
	default:
		return PotentialLow
	}
}

// Per-skill confidence factors by sample depth.
const (
	deepHistorySamples   = 4
	deepHistoryFactor    = 0.95
	shallowHistoryFactor = 0.75
)

func skillForecast(c *catalog.Catalog, history []model.EvaluationRecord, s catalog.Skill, accuracy float64) SkillForecast {
	series := model.SkillSeries(history, int(s))
	current := 0.0
	if len(series) > 0 {
		current = series[len(series)-1]
	}
	trend := analytics.EstimateTrend(series)

	factor := shallowHistoryFactor
	if len(series) >= deepHistorySamples {
		factor = deepHistoryFactor
	}
	return SkillForecast{
		Skill:                s,
		Label:                c.Label(s),
		CurrentScore:         current,
		Average:              analytics.Mean(series),
		Samples:              len(series),
		Level:                analytics.Classify(current),
		Trend:                trend,
		Predictions:          project(current, trend.Slope, accuracy),
		ImprovementPotential: potential(current, trend.Slope),
		Confidence:           accuracy / 100 * factor,
	}
}
