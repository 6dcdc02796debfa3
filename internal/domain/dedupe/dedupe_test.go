package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/motorcast/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("Then it starts empty", func() {
			So(d, ShouldNotBeNil)
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When an evaluation is recorded for the first time", func() {
			seen := d.SeenAndRecord(ctx, dedupe.Key("learner-1", "eval-1"))

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And a resubmission is reported as seen", func() {
				So(d.SeenAndRecord(ctx, dedupe.Key("learner-1", "eval-1")), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And the same evaluation id for another learner is new", func() {
				So(d.SeenAndRecord(ctx, dedupe.Key("learner-2", "eval-1")), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 2)
			})
		})

		Convey("When learner ids contain slashes", func() {
			first := dedupe.Key("a/b", "c")
			second := dedupe.Key("a", "b/c")

			Convey("Then the keys stay distinct", func() {
				So(first, ShouldNotEqual, second)
				So(d.SeenAndRecord(ctx, first), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, second), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 2)
			})
		})

		Convey("When an evaluation is unrecorded", func() {
			key := dedupe.Key("learner-1", "eval-1")
			d.SeenAndRecord(ctx, key)
			d.Unrecord(ctx, key)

			Convey("Then it can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, key), ShouldBeFalse)
			})

			Convey("And unrecording an unknown key changes nothing", func() {
				d.Unrecord(ctx, "missing")
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for i := 1; i <= 3; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("k%d", i))
		}

		Convey("When a fourth key arrives", func() {
			So(d.SeenAndRecord(ctx, "k4"), ShouldBeFalse)

			Convey("Then the oldest key is forgotten", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "k2"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "k3"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "k4"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "k1"), ShouldBeFalse)
			})
		})

		Convey("When a middle key is unrecorded", func() {
			d.Unrecord(ctx, "k2")
			d.SeenAndRecord(ctx, "k4")
			d.SeenAndRecord(ctx, "k5")

			Convey("Then eviction continues from the oldest remaining key", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "k3"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "k4"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "k5"), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

		Convey("When many keys are recorded", func() {
			for i := 0; i < 1000; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("k%d", i))
			}

			Convey("Then none are evicted", func() {
				So(d.Size(), ShouldEqual, 1000)
				So(d.SeenAndRecord(ctx, "k0"), ShouldBeTrue)
			})
		})
	})
}

func TestInMemoryDeduperConcurrency(t *testing.T) {
	Convey("Given a deduper shared by many goroutines", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		const goroutines, perGoroutine = 10, 100
		var newCount sync.Map
		var wg sync.WaitGroup
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perGoroutine; i++ {
					key := fmt.Sprintf("k%d", i)
					if !d.SeenAndRecord(ctx, key) {
						if _, loaded := newCount.LoadOrStore(key, true); loaded {
							panic("key recorded twice: " + key)
						}
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then every key is recorded exactly once", func() {
			So(d.Size(), ShouldEqual, perGoroutine)
			n := 0
			newCount.Range(func(_, _ any) bool { n++; return true })
			So(n, ShouldEqual, perGoroutine)
		})
	})
}
