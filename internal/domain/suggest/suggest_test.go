package suggest_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/okian/motorcast/internal/domain/analytics"
	"github.com/okian/motorcast/internal/domain/catalog"
	"github.com/okian/motorcast/internal/domain/model"
	"github.com/okian/motorcast/internal/domain/suggest"
	. "github.com/smartystreets/goconvey/convey"
)

func ip(v int) *int { return &v }

func fp(v float64) *float64 { return &v }

func uniform(v int) model.EvaluationRecord {
	scores := make([]*int, model.MaxSkills)
	for i := range scores {
		scores[i] = ip(v)
	}
	return model.EvaluationRecord{Scores: scores}
}

func skillsOf(set suggest.Set) []catalog.Skill {
	out := make([]catalog.Skill, len(set.Suggestions))
	for i, s := range set.Suggestions {
		out[i] = s.Skill
	}
	return out
}

func TestRanking(t *testing.T) {
	Convey("Given every skill with the same average", t, func() {
		set := suggest.New().Build([]model.EvaluationRecord{uniform(3)}, nil, "Ana", model.StyleNone)

		Convey("Then ties keep catalog order", func() {
			So(skillsOf(set), ShouldResemble, []catalog.Skill{
				catalog.PincerGrasp, catalog.ScissorCutting, catalog.LineTracing, catalog.BeadThreading,
			})
			for i, s := range set.Suggestions {
				So(s.Priority, ShouldEqual, i+1)
			}
		})

		Convey("Then repeated builds rank identically", func() {
			for i := 0; i < 20; i++ {
				again := suggest.New().Build([]model.EvaluationRecord{uniform(3)}, nil, "Ana", model.StyleNone)
				So(skillsOf(again), ShouldResemble, skillsOf(set))
			}
		})
	})

	Convey("Given distinct averages", t, func() {
		r := uniform(5)
		r.Scores[catalog.ClayModeling] = ip(1)
		r.Scores[catalog.Buttoning] = ip(2)
		r.Scores[catalog.Coloring] = ip(2)
		r.Scores[catalog.ScissorCutting] = ip(4)
		set := suggest.New().Build([]model.EvaluationRecord{r}, nil, "Ana", model.StyleNone)

		Convey("Then the weakest skills come first and ties keep catalog order", func() {
			So(skillsOf(set), ShouldResemble, []catalog.Skill{
				catalog.ClayModeling, catalog.Buttoning, catalog.Coloring, catalog.ScissorCutting,
			})
			So(set.Suggestions[0].AverageScore, ShouldEqual, 1)
		})
	})

	Convey("Given a skill stuck at 1 over three evaluations", t, func() {
		history := make([]model.EvaluationRecord, 3)
		for i := range history {
			history[i] = uniform(5)
			history[i].Scores[catalog.BlockStacking] = ip(1)
		}
		set := suggest.New().Build(history, nil, "Ana", model.StyleNone)

		Convey("Then it is the top suggestion with a stable outlook", func() {
			top := set.Suggestions[0]
			So(top.Skill, ShouldEqual, catalog.BlockStacking)
			So(top.Trend.Label, ShouldEqual, analytics.TrendStable)
			So(top.ExpectedProgress, ShouldEqual, "Progress expected in 2-4 weeks with focused intervention")
		})
	})
}

func TestSuggestionContent(t *testing.T) {
	Convey("Given a rising skill and a visual learner", t, func() {
		history := []model.EvaluationRecord{uniform(5), uniform(5)}
		history[0].Scores[catalog.Buttoning] = ip(1)
		history[1].Scores[catalog.Buttoning] = ip(2)
		set := suggest.New().Build(history, nil, "Leo", model.StyleVisual)
		top := set.Suggestions[0]
		entry := catalog.Default().Entry(catalog.Buttoning)

		Convey("Then the suggestion is filled from the catalog", func() {
			So(top.Skill, ShouldEqual, catalog.Buttoning)
			So(top.Label, ShouldEqual, entry.Label)
			So(top.Type, ShouldEqual, entry.Archetype.Type)
			So(top.Benefits, ShouldResemble, entry.Archetype.Benefits)
			So(top.Exercises, ShouldResemble, entry.Exercises)
		})

		Convey("Then the description names the learner and ends with the style clause", func() {
			So(top.Description, ShouldContainSubstring, "Leo")
			So(top.Description, ShouldNotContainSubstring, "{name}")
			So(top.Description, ShouldNotContainSubstring, "{skill}")
			So(top.Description, ShouldEndWith, catalog.Default().StyleClause(model.StyleVisual))
		})

		Convey("Then improvement is expected", func() {
			So(top.Trend.Label, ShouldEqual, analytics.TrendRapidImprovement)
			So(top.ExpectedProgress, ShouldEqual, "Continuous improvement expected")
		})

		Convey("Then mutating the output leaves the catalog intact", func() {
			top.Exercises[0].Name = "changed"
			top.Benefits[0] = "changed"
			fresh := catalog.Default().Entry(catalog.Buttoning)
			So(fresh.Exercises[0].Name, ShouldNotEqual, "changed")
			So(fresh.Archetype.Benefits[0], ShouldNotEqual, "changed")
		})
	})

	Convey("Given a declining skill and no style", t, func() {
		history := []model.EvaluationRecord{uniform(3), uniform(3)}
		history[0].Scores[catalog.Coloring] = ip(3)
		history[1].Scores[catalog.Coloring] = ip(1)
		set := suggest.New().Build(history, nil, "Leo", model.StyleNone)
		top := set.Suggestions[0]

		Convey("Then daily practice is advised and no clause is added", func() {
			So(top.Skill, ShouldEqual, catalog.Coloring)
			So(top.ExpectedProgress, ShouldEqual, "Priority area: daily practice recommended")
			for _, style := range []model.LearningStyle{model.StyleVisual, model.StyleAuditory, model.StyleKinesthetic} {
				So(top.Description, ShouldNotEndWith, catalog.Default().StyleClause(style))
			}
		})
	})
}

func TestWeeklyPlan(t *testing.T) {
	Convey("Given the default catalog and tied skills", t, func() {
		set := suggest.New().Build([]model.EvaluationRecord{uniform(3)}, nil, "Ana", model.StyleNone)

		Convey("Then the plan cycles suggestions and alternates exercises", func() {
			So(set.WeeklyPlan, ShouldResemble, []suggest.PlanDay{
				{Day: "Monday", Activity: "Pom-pom transfer (Pincer grasp)", Duration: "10 min"},
				{Day: "Tuesday", Activity: "Cut along the road (Scissor cutting)", Duration: "15 min"},
				{Day: "Wednesday", Activity: "Rainbow tracing (Line tracing)", Duration: "10 min"},
				{Day: "Thursday", Activity: "Pasta garland (Bead threading)", Duration: "15 min"},
				{Day: "Friday", Activity: "Pom-pom transfer (Pincer grasp)", Duration: "10 min"},
			})
		})
	})

	Convey("Given a catalog with one exercise or none per skill", t, func() {
		var entries [catalog.SkillCount]catalog.Entry
		for i := range entries {
			entries[i] = catalog.Entry{Label: fmt.Sprintf("Skill %d", i)}
		}
		entries[0].Exercises = []catalog.Exercise{{Name: "Solo", Duration: "5 min"}}
		c, err := catalog.New(entries, nil)
		So(err, ShouldBeNil)

		set := suggest.New(suggest.WithCatalog(c)).Build([]model.EvaluationRecord{uniform(3)}, nil, "Ana", model.StyleNone)

		Convey("Then single exercises repeat and empty entries fall back", func() {
			So(set.WeeklyPlan[0], ShouldResemble, suggest.PlanDay{Day: "Monday", Activity: "Solo (Skill 0)", Duration: "5 min"})
			So(set.WeeklyPlan[1], ShouldResemble, suggest.PlanDay{Day: "Tuesday", Activity: "Free practice (Skill 1)", Duration: "15 min"})
			So(set.WeeklyPlan[4], ShouldResemble, suggest.PlanDay{Day: "Friday", Activity: "Solo (Skill 0)", Duration: "5 min"})
		})
	})
}

func TestOverall(t *testing.T) {
	Convey("Given no model summary", t, func() {
		set := suggest.New().Build([]model.EvaluationRecord{uniform(5)}, nil, "Ana", model.StyleNone)

		Convey("Then the default accuracy is used", func() {
			So(set.ModelConfidence, ShouldAlmostEqual, 0.85, 1e-12)
		})

		Convey("Then the advanced template is chosen", func() {
			So(set.OverallAverage, ShouldEqual, 5)
			So(set.Band, ShouldEqual, "advanced")
			So(set.Recommendation, ShouldStartWith, "Ana ")
			So(set.Recommendation, ShouldContainSubstring, "5.0")
		})
	})

	Convey("Given an explicit accuracy", t, func() {
		set := suggest.New().Build(nil, &model.ModelQualitySummary{Accuracy: fp(70)}, "Ana", model.StyleNone)

		Convey("Then it is reported as a fraction", func() {
			So(set.ModelConfidence, ShouldAlmostEqual, 0.7, 1e-12)
		})
	})

	Convey("Given an empty history", t, func() {
		set := suggest.New().Build(nil, nil, "Ana", model.StyleNone)

		Convey("Then the output is neutral but complete", func() {
			So(set.OverallAverage, ShouldEqual, 0)
			So(set.Band, ShouldEqual, "emerging")
			So(set.Suggestions, ShouldHaveLength, 4)
			So(set.WeeklyPlan, ShouldHaveLength, 5)
			So(set.Recommendation, ShouldContainSubstring, "0.0")
		})
	})

	Convey("Given averages in each band", t, func() {
		cases := map[int]string{4: "advanced", 3: "proficient", 2: "developing", 1: "emerging"}
		for score, band := range cases {
			set := suggest.New().Build([]model.EvaluationRecord{uniform(score)}, nil, "Ana", model.StyleNone)
			So(set.Band, ShouldEqual, band)
		}
	})
}

func TestConcurrentBuild(t *testing.T) {
	Convey("Given one synthesizer shared by many goroutines", t, func() {
		s := suggest.New()
		history := []model.EvaluationRecord{uniform(2), uniform(4)}
		want := s.Build(history, nil, "Ana", model.StyleAuditory)

		const goroutines = 32
		results := make([]suggest.Set, goroutines)
		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = s.Build(history, nil, "Ana", model.StyleAuditory)
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
