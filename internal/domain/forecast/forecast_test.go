package forecast_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/okian/motorcast/internal/domain/analytics"
	"github.com/okian/motorcast/internal/domain/catalog"
	"github.com/okian/motorcast/internal/domain/forecast"
	"github.com/okian/motorcast/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func ip(v int) *int { return &v }

func fp(v float64) *float64 { return &v }

// uniform returns a record with every skill scored v.
func uniform(v int) model.EvaluationRecord {
	scores := make([]*int, model.MaxSkills)
	for i := range scores {
		scores[i] = ip(v)
	}
	return model.EvaluationRecord{Scores: scores}
}

func TestBuildSingleTopRecord(t *testing.T) {
	Convey("Given a single record with every skill at 5", t, func() {
		res := forecast.New().Build([]model.EvaluationRecord{uniform(5)}, nil, "Ana")

		Convey("Then the overall summary is high and stable", func() {
			So(res.Evaluations, ShouldEqual, 1)
			So(res.Overall.CurrentAverage, ShouldEqual, 5)
			So(res.Overall.Trend.Slope, ShouldEqual, 0)
			So(res.Overall.Trend.Label, ShouldEqual, analytics.TrendStable)
			So(res.Overall.Level, ShouldEqual, analytics.LevelHigh)
		})

		Convey("Then every horizon predicts 5 with bounds clamped at 5", func() {
			So(len(res.Overall.Predictions), ShouldEqual, 3)
			lowers := []float64{4.955, 4.865, 4.73}
			likelihoods := []float64{0.765, 0.68, 0.595}
			for i, p := range res.Overall.Predictions {
				So(p.HorizonMonths, ShouldEqual, forecast.Horizons[i].Months)
				So(p.ExpectedAverage, ShouldEqual, 5)
				So(p.ConfidenceInterval[0], ShouldAlmostEqual, lowers[i], 1e-9)
				So(p.ConfidenceInterval[1], ShouldEqual, 5)
				So(p.Likelihood, ShouldAlmostEqual, likelihoods[i], 1e-9)
			}
		})

		Convey("Then only the short history is a risk", func() {
			So(res.RiskFactors, ShouldResemble, []string{
				"Ana has insufficient evaluation history (fewer than 3 evaluations)",
			})
		})

		Convey("Then empty lists fall back to fixed sentences", func() {
			So(res.Opportunities, ShouldResemble, []string{"Ana should continue with the current plan"})
			So(res.FocusAreas, ShouldBeEmpty)
			So(res.Tips, ShouldResemble, []string{"Ana should continue with the current plan"})
		})

		Convey("Then little support is needed", func() {
			So(res.Recommendation.SupportNeed, ShouldEqual, "low")
			So(res.Recommendation.Message, ShouldStartWith, "Ana ")
		})

		Convey("Then shallow skill histories lower confidence", func() {
			for _, sk := range res.Skills {
				So(sk.Samples, ShouldEqual, 1)
				So(sk.Confidence, ShouldAlmostEqual, 0.85*0.75, 1e-9)
				So(sk.ImprovementPotential, ShouldEqual, forecast.PotentialLow)
			}
		})
	})
}

func TestBuildRapidImprovement(t *testing.T) {
	Convey("Given two records averaging 2 then 3", t, func() {
		history := []model.EvaluationRecord{uniform(2), uniform(3)}
		res := forecast.New().Build(history, nil, "Leo")

		Convey("Then the overall slope is 1 and rapid", func() {
			So(res.Overall.Trend.Slope, ShouldEqual, 1.0)
			So(res.Overall.Trend.Label, ShouldEqual, analytics.TrendRapidImprovement)
			So(res.Overall.Predictions[0].ExpectedAverage, ShouldEqual, 4.0)
			So(res.Overall.Predictions[1].ExpectedAverage, ShouldEqual, 5.0)
		})

		Convey("Then improvement and velocity are opportunities", func() {
			So(res.Opportunities, ShouldResemble, []string{
				"Leo is improving in 8 skills",
				"Leo shows above-average learning velocity",
			})
		})

		Convey("Then skills at 3 with a rising slope have medium potential", func() {
			for _, sk := range res.Skills {
				So(sk.ImprovementPotential, ShouldEqual, forecast.PotentialMedium)
				So(sk.Average, ShouldEqual, 2.5)
			}
		})

		Convey("Then focus areas take the first three weak skills in catalog order", func() {
			So(res.FocusAreas, ShouldResemble, []string{"Pincer grasp", "Scissor cutting", "Line tracing"})
			So(res.Tips, ShouldHaveLength, 3)
			So(res.Tips[0], ShouldEqual, "Leo can strengthen Pincer grasp with short, frequent practice sessions")
		})

		Convey("Then medium support is recommended", func() {
			So(res.Recommendation.SupportNeed, ShouldEqual, "medium")
		})
	})
}

func TestBuildFlatLowSkill(t *testing.T) {
	Convey("Given a skill stuck at 1 while the others are at 5", t, func() {
		history := make([]model.EvaluationRecord, 3)
		for i := range history {
			history[i] = uniform(5)
			history[i].Scores[catalog.PincerGrasp] = ip(1)
		}
		res := forecast.New().Build(history, nil, "Mia")
		sk := res.Skills[catalog.PincerGrasp]

		Convey("Then the skill is stable with medium potential", func() {
			So(sk.Trend.Slope, ShouldEqual, 0)
			So(sk.Trend.Label, ShouldEqual, analytics.TrendStable)
			So(sk.ImprovementPotential, ShouldEqual, forecast.PotentialMedium)
			So(sk.Level, ShouldEqual, analytics.LevelLow)
		})

		Convey("Then it is the only focus area", func() {
			So(res.FocusAreas, ShouldResemble, []string{"Pincer grasp"})
		})

		Convey("Then it counts as a low skill", func() {
			So(res.RiskFactors, ShouldResemble, []string{"Mia has 1 skills below a 2.5 average"})
		})
	})
}

func TestBuildModelAccuracy(t *testing.T) {
	Convey("Given no model summary", t, func() {
		res := forecast.New().Build([]model.EvaluationRecord{uniform(3)}, nil, "Ana")

		Convey("Then the default accuracy drives confidence", func() {
			So(res.ModelConfidence, ShouldAlmostEqual, 0.85, 1e-12)
		})
	})

	Convey("Given a perfect model", t, func() {
		res := forecast.New().Build([]model.EvaluationRecord{uniform(3)}, &model.ModelQualitySummary{Accuracy: fp(100)}, "Ana")

		Convey("Then intervals collapse onto the expectation", func() {
			for _, p := range res.Overall.Predictions {
				So(p.ConfidenceInterval[0], ShouldEqual, p.ExpectedAverage)
				So(p.ConfidenceInterval[1], ShouldEqual, p.ExpectedAverage)
			}
		})
	})

	Convey("Given deep skill histories", t, func() {
		history := []model.EvaluationRecord{uniform(3), uniform(3), uniform(3), uniform(3)}
		res := forecast.New().Build(history, &model.ModelQualitySummary{Accuracy: fp(80)}, "Ana")

		Convey("Then skill confidence uses the deep factor", func() {
			So(res.Skills[0].Confidence, ShouldAlmostEqual, 0.8*0.95, 1e-9)
		})
	})
}

func TestBuildEmptyHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		res := forecast.New().Build(nil, nil, "Ana")

		Convey("Then aggregates degrade to zero and stable", func() {
			So(res.Evaluations, ShouldEqual, 0)
			So(res.Overall.CurrentAverage, ShouldEqual, 0)
			So(res.Overall.Trend.Label, ShouldEqual, analytics.TrendStable)
			So(len(res.Skills), ShouldEqual, catalog.SkillCount)
		})

		Convey("Then projections stay on the scale", func() {
			for _, p := range res.Overall.Predictions {
				So(p.ExpectedAverage, ShouldEqual, analytics.MinScore)
				So(p.ConfidenceInterval[0], ShouldBeGreaterThanOrEqualTo, analytics.MinScore)
				So(p.ConfidenceInterval[1], ShouldBeLessThanOrEqualTo, analytics.MaxScore)
			}
		})

		Convey("Then every risk condition fires", func() {
			So(res.RiskFactors, ShouldResemble, []string{
				"Ana has 8 skills below a 2.5 average",
				"Ana has insufficient evaluation history (fewer than 3 evaluations)",
				"Ana has multiple stagnant skills",
			})
			So(res.Recommendation.SupportNeed, ShouldEqual, "high")
		})
	})
}

func TestBuildDecline(t *testing.T) {
	Convey("Given a declining learner", t, func() {
		history := []model.EvaluationRecord{uniform(4), uniform(3), uniform(2)}
		res := forecast.New().Build(history, nil, "Ana")

		Convey("Then a negative trend is reported", func() {
			So(res.Overall.Trend.Label, ShouldEqual, analytics.TrendDecline)
			So(res.RiskFactors, ShouldContain, "Ana shows a negative overall trend")
			So(res.RiskFactors, ShouldNotContain, "Ana has insufficient evaluation history (fewer than 3 evaluations)")
		})
	})

	Convey("Given a low skill rising quickly", t, func() {
		history := []model.EvaluationRecord{uniform(4), uniform(4)}
		history[0].Scores[catalog.Buttoning] = ip(1)
		history[1].Scores[catalog.Buttoning] = ip(2)
		res := forecast.New().Build(history, nil, "Ana")

		Convey("Then it has high potential and becomes a focus area", func() {
			So(res.Skills[catalog.Buttoning].ImprovementPotential, ShouldEqual, forecast.PotentialHigh)
			So(res.Opportunities, ShouldContain, "Ana has 1 skills with high improvement potential")
			So(res.FocusAreas, ShouldResemble, []string{"Buttoning"})
		})
	})
}

func TestBuildBounds(t *testing.T) {
	Convey("Given many score patterns and accuracies", t, func() {
		b := forecast.New()
		for _, acc := range []float64{0, 50, 85, 100} {
			for start := 1; start <= 5; start++ {
				for end := 1; end <= 5; end++ {
					history := []model.EvaluationRecord{uniform(start), uniform(end)}
					res := b.Build(history, &model.ModelQualitySummary{Accuracy: fp(acc)}, "x")

					all := append([]analytics.Prediction{}, res.Overall.Predictions...)
					for _, sk := range res.Skills {
						all = append(all, sk.Predictions...)
					}
					for _, p := range all {
						So(p.ExpectedAverage, ShouldBeBetweenOrEqual, 1.0, 5.0)
						So(p.ConfidenceInterval[0], ShouldBeBetweenOrEqual, 1.0, 5.0)
						So(p.ConfidenceInterval[1], ShouldBeBetweenOrEqual, 1.0, 5.0)
						So(p.ConfidenceInterval[0], ShouldBeLessThanOrEqualTo, p.ConfidenceInterval[1])
					}
				}
			}
		}
	})
}

func TestBuildDoesNotMutate(t *testing.T) {
	Convey("Given a history", t, func() {
		history := []model.EvaluationRecord{uniform(2), {Scores: []*int{nil, ip(4)}}}
		before := model.CloneRecords(history)

		forecast.New().Build(history, nil, "Ana")

		Convey("Then the input is untouched", func() {
			So(history, ShouldResemble, before)
		})
	})
}

func TestWithCatalog(t *testing.T) {
	Convey("Given a substitute catalog", t, func() {
		var entries [catalog.SkillCount]catalog.Entry
		for i := range entries {
			entries[i] = catalog.Entry{Label: fmt.Sprintf("Custom %d", i)}
		}
		c, err := catalog.New(entries, nil)
		So(err, ShouldBeNil)

		res := forecast.New(forecast.WithCatalog(c)).Build([]model.EvaluationRecord{uniform(1)}, nil, "Ana")

		Convey("Then labels come from it", func() {
			So(res.Skills[0].Label, ShouldEqual, "Custom 0")
			So(res.FocusAreas, ShouldResemble, []string{"Custom 0", "Custom 1", "Custom 2"})
		})

		Convey("And a nil catalog keeps the default", func() {
			res := forecast.New(forecast.WithCatalog(nil)).Build([]model.EvaluationRecord{uniform(1)}, nil, "Ana")
			So(res.Skills[0].Label, ShouldEqual, "Pincer grasp")
		})
	})
}

func TestBuildConcurrent(t *testing.T) {
	Convey("Given one builder shared by many goroutines", t, func() {
		b := forecast.New()
		history := []model.EvaluationRecord{uniform(2), uniform(3), uniform(4)}
		want := b.Build(history, nil, "Ana")

		const goroutines = 32
		results := make([]forecast.Result, goroutines)
		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = b.Build(history, nil, "Ana")
			}(i)
		}
		wg.Wait()

		Convey("Then every result is identical", func() {
			for _, r := range results {
				So(r, ShouldResemble, want)
			}
		})
	})
}
