package simulate

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/okian/motorcast/internal/domain/analytics"
	"github.com/okian/motorcast/internal/domain/model"
)

// Profile shapes how a synthetic learner's scores move over time.
type Profile string

// Learner profiles, assigned round-robin.
const (
	ProfileImproving Profile = "improving"
	ProfileStable    Profile = "stable"
	ProfileDeclining Profile = "declining"
	ProfileMixed     Profile = "mixed"
)

// Profiles lists every profile in assignment order.
var Profiles = [...]Profile{ProfileImproving, ProfileStable, ProfileDeclining, ProfileMixed}

var styles = [...]model.LearningStyle{model.StyleNone, model.StyleVisual, model.StyleAuditory, model.StyleKinesthetic}

const (
	driftPerEvaluation = 0.3
	noiseSpread        = 0.6
	unassessedRate     = 0.1
)

// Learner is a synthetic learner with its full evaluation history.
type Learner struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	Profile       Profile                  `json:"profile"`
	LearningStyle model.LearningStyle      `json:"learning_style"`
	Evaluations   []model.EvaluationRecord `json:"evaluations"`
}

// Generate builds cfg.Learners synthetic learners with cfg.Evaluations
// monthly evaluations each. The output depends only on cfg.Seed and the
// two counts.
func Generate(cfg *Config) ([]Learner, error) {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:8], cfg.Seed)
	src := rand.NewChaCha8(seed)
	rng := rand.New(src)

	learners := make([]Learner, cfg.Learners)
	for i := range learners {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return nil, fmt.Errorf("generate learner id: %w", err)
		}
		profile := Profiles[i%len(Profiles)]
		learners[i] = Learner{
			ID:            id.String(),
			Name:          fmt.Sprintf("Learner %03d", i+1),
			Profile:       profile,
			LearningStyle: styles[rng.IntN(len(styles))],
			Evaluations:   history(rng, profile, cfg.Evaluations),
		}
	}
	return learners, nil
}

func history(rng *rand.Rand, profile Profile, n int) []model.EvaluationRecord {
	var base [model.MaxSkills]float64
	for s := range base {
		base[s] = startLevel(profile) + rng.Float64()
	}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.EvaluationRecord, n)
	for t := range out {
		scores := make([]*int, model.MaxSkills)
		for s := range scores {
			if rng.Float64() < unassessedRate {
				continue
			}
			v := base[s] + drift(profile, s)*float64(t) + (rng.Float64()-0.5)*noiseSpread
			score := int(analytics.Clamp(math.Round(v), analytics.MinScore, analytics.MaxScore))
			scores[s] = &score
		}
		out[t] = model.EvaluationRecord{
			ID:     fmt.Sprintf("eval-%03d", t+1),
			Date:   start.AddDate(0, t, 0).Format("2006-01-02"),
			Scores: scores,
		}
	}
	return out
}

func startLevel(p Profile) float64 {
	switch p {
	case ProfileImproving:
		return 1.5
	case ProfileDeclining:
		return 3.5
	default:
		return 2.5
	}
}

// drift is the expected per-evaluation change of skill s.
func drift(p Profile, s int) float64 {
	switch p {
	case ProfileImproving:
		return driftPerEvaluation
	case ProfileDeclining:
		return -driftPerEvaluation
	case ProfileMixed:
		if s%2 == 0 {
			return driftPerEvaluation
		}
		return -driftPerEvaluation
	default:
		return 0
	}
}

// Agrees reports whether an overall trend matches what the profile should
// produce. Mixed learners always agree.
func (p Profile) Agrees(t analytics.Trend) bool {
	switch p {
	case ProfileImproving:
		return t.Slope > 0
	case ProfileDeclining:
		return t.Slope < 0
	case ProfileStable:
		return t.Label == analytics.TrendStable
	default:
		return true
	}
}
