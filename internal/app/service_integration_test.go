package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	service "github.com/okian/motorcast/internal/app"
	"github.com/okian/motorcast/internal/domain/analytics"
	"github.com/okian/motorcast/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(1000),
			service.WithDedupeSize(500),
			service.WithShardCount(4),
			service.WithMaxHistory(5),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		acc := 80.0
		So(svc.UpsertLearner(ctx, model.Learner{
			ID:            "learner-1",
			Name:          "Noa",
			LearningStyle: model.StyleKinesthetic,
			Model:         &model.ModelQualitySummary{Accuracy: &acc},
		}), ShouldBeNil)

		Convey("When submitting evaluations end-to-end", func() {
			for i, v := range []int{2, 3, 4} {
				rec := record(fmt.Sprintf("2024-0%d-01", i+1), v, v, v, v, v, v, v, v)
				rec.ID = fmt.Sprintf("eval-%d", i)
				id, dup, err := svc.SubmitEvaluation(ctx, "learner-1", rec)
				So(err, ShouldBeNil)
				So(dup, ShouldBeFalse)
				So(id, ShouldEqual, rec.ID)
			}
			history := waitForHistory(ctx, svc, "learner-1", 3)

			Convey("Then the history should be stored", func() {
				So(len(history), ShouldEqual, 3)
			})

			Convey("And the forecast should use the stored profile", func() {
				res, err := svc.Forecast(ctx, "learner-1")
				So(err, ShouldBeNil)
				So(res.LearnerName, ShouldEqual, "Noa")
				So(res.Evaluations, ShouldEqual, 3)
				So(res.ModelConfidence, ShouldAlmostEqual, 0.8)
				So(res.Overall.CurrentAverage, ShouldEqual, 4.0)
			})

			Convey("And the suggestions should use the learning style", func() {
				set, err := svc.Suggestions(ctx, "learner-1")
				So(err, ShouldBeNil)
				So(set.LearnerName, ShouldEqual, "Noa")
				So(set.OverallAverage, ShouldAlmostEqual, 3.0)
				So(set.Band, ShouldEqual, "proficient")
			})

			Convey("And resubmitting an evaluation id should be a duplicate", func() {
				rec := record("2024-01-01", 1)
				rec.ID = "eval-0"
				id, dup, err := svc.SubmitEvaluation(ctx, "learner-1", rec)
				So(err, ShouldBeNil)
				So(dup, ShouldBeTrue)
				So(id, ShouldEqual, "eval-0")
			})
		})

		Convey("When learner and evaluation ids both contain slashes", func() {
			So(svc.UpsertLearner(ctx, model.Learner{ID: "a/b", Name: "Ada"}), ShouldBeNil)
			So(svc.UpsertLearner(ctx, model.Learner{ID: "a", Name: "Ari"}), ShouldBeNil)

			first := record("2024-01-01", 3)
			first.ID = "c"
			_, dupFirst, errFirst := svc.SubmitEvaluation(ctx, "a/b", first)
			second := record("2024-01-01", 4)
			second.ID = "b/c"
			_, dupSecond, errSecond := svc.SubmitEvaluation(ctx, "a", second)

			Convey("Then each learner keeps its own evaluation", func() {
				So(errFirst, ShouldBeNil)
				So(errSecond, ShouldBeNil)
				So(dupFirst, ShouldBeFalse)
				So(dupSecond, ShouldBeFalse)
				So(waitForHistory(ctx, svc, "a/b", 1), ShouldHaveLength, 1)
				So(waitForHistory(ctx, svc, "a", 1), ShouldHaveLength, 1)
			})
		})

		Convey("When an evaluation has no id or date", func() {
			id, dup, err := svc.SubmitEvaluation(ctx, "learner-1", record("", 3))
			history := waitForHistory(ctx, svc, "learner-1", 1)

			Convey("Then both should be filled in", func() {
				So(err, ShouldBeNil)
				So(dup, ShouldBeFalse)
				So(id, ShouldNotBeEmpty)
				So(len(history), ShouldEqual, 1)
				So(history[0].ID, ShouldEqual, id)
				So(history[0].Date, ShouldEqual, time.Now().UTC().Format("2006-01-02"))
			})
		})

		Convey("When more evaluations than the history limit arrive", func() {
			for i := range 8 {
				rec := record("2024-01-01", 1+i%5)
				rec.ID = fmt.Sprintf("burst-%d", i)
				_, _, err := svc.SubmitEvaluation(ctx, "learner-1", rec)
				So(err, ShouldBeNil)
			}
			time.Sleep(200 * time.Millisecond)
			history := waitForHistory(ctx, svc, "learner-1", 5)

			Convey("Then only the newest records are kept", func() {
				So(len(history), ShouldEqual, 5)
			})
		})

		Convey("When the learner is unknown", func() {
			_, _, subErr := svc.SubmitEvaluation(ctx, "nobody", record("2024-01-01", 3))
			_, fcErr := svc.Forecast(ctx, "nobody")
			_, sgErr := svc.Suggestions(ctx, "nobody")

			Convey("Then every operation should report not found", func() {
				So(errors.Is(subErr, service.ErrNotFound), ShouldBeTrue)
				So(errors.Is(fcErr, service.ErrNotFound), ShouldBeTrue)
				So(errors.Is(sgErr, service.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the evaluation is invalid", func() {
			_, _, err := svc.SubmitEvaluation(ctx, "learner-1", record("2024-13-45", 3))

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When the learner profile is invalid", func() {
			err := svc.UpsertLearner(ctx, model.Learner{ID: "learner-2"})

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When a learner has no evaluations yet", func() {
			So(svc.UpsertLearner(ctx, model.Learner{ID: "learner-3", Name: "Kai"}), ShouldBeNil)
			res, err := svc.Forecast(ctx, "learner-3")

			Convey("Then the forecast should degrade to defaults", func() {
				So(err, ShouldBeNil)
				So(res.Evaluations, ShouldEqual, 0)
				So(res.Overall.Trend.Label, ShouldEqual, analytics.TrendStable)
				So(res.ModelConfidence, ShouldAlmostEqual, 0.85)
			})
		})
	})
}

func TestServiceBackpressure(t *testing.T) {
	Convey("Given a service whose queue is never drained", t, func() {
		svc := service.New(service.WithWorkerCount(1), service.WithQueueSize(1))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()
		So(svc.UpsertLearner(ctx, model.Learner{ID: "learner-1", Name: "Zoe"}), ShouldBeNil)

		Convey("When submissions outpace the workers", func() {
			var backpressure error
			var rejected string
			for i := range 10_000 {
				rec := record("2024-01-01", 3)
				rec.ID = fmt.Sprintf("eval-%d", i)
				if _, _, err := svc.SubmitEvaluation(ctx, "learner-1", rec); err != nil {
					backpressure = err
					rejected = rec.ID
					break
				}
			}

			Convey("Then the rejected evaluation can be retried later", func() {
				if backpressure == nil {
					// Workers kept up with every submission.
					return
				}
				So(errors.Is(backpressure, service.ErrBackpressure), ShouldBeTrue)

				rec := record("2024-01-01", 3)
				rec.ID = rejected
				var err error
				var dup bool
				for range 100 {
					if _, dup, err = svc.SubmitEvaluation(ctx, "learner-1", rec); err == nil {
						break
					}
					time.Sleep(5 * time.Millisecond)
				}
				So(err, ShouldBeNil)
				So(dup, ShouldBeFalse)
			})
		})
	})
}
