package lookup_test

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitscore/internal/domain/lookup"
)

func TestStoreLookup(t *testing.T) {
	Convey("Given a store with one subject table", t, func() {
		table := lookup.Table{"131": {"u1": {Value: 140.5}, "u2": {Placeholder: "-"}}}
		store := lookup.NewStore(lookup.WithTable("korean", table))

		Convey("When the entry exists", func() {
			cell, err := store.Lookup("korean", "131", "u1")
			So(err, ShouldBeNil)
			So(cell.Numeric(), ShouldBeTrue)
			So(cell.Value, ShouldEqual, 140.5)
		})

		Convey("When the entry is a placeholder", func() {
			cell, err := store.Lookup("korean", "131", "u2")
			So(err, ShouldBeNil)
			So(cell.Numeric(), ShouldBeFalse)
		})

		Convey("When subject, key or university is missing", func() {
			_, err := store.Lookup("math", "131", "u1")
			So(errors.Is(err, lookup.ErrSubjectNotFound), ShouldBeTrue)
			_, err = store.Lookup("korean", "99", "u1")
			So(errors.Is(err, lookup.ErrKeyNotFound), ShouldBeTrue)
			_, err = store.Lookup("korean", "131", "u9")
			So(errors.Is(err, lookup.ErrUniversityNotFound), ShouldBeTrue)
		})

		Convey("When the source table is mutated after construction", func() {
			table["131"]["u1"] = lookup.Cell{Value: 1}
			cell, _ := store.Lookup("korean", "131", "u1")
			So(cell.Value, ShouldEqual, 140.5)
		})
	})
}

func TestCurve(t *testing.T) {
	Convey("Given a curve", t, func() {
		c := lookup.Curve{1: 200, 2: 196}
		So(c.At(1), ShouldEqual, 200.0)
		So(math.IsNaN(c.At(3)), ShouldBeTrue)
		So(c.Max(), ShouldEqual, 200.0)
		So(math.IsNaN(lookup.Curve{}.Max()), ShouldBeTrue)
	})
}

func TestAdvantage(t *testing.T) {
	Convey("Given advantage rows", t, func() {
		store := lookup.NewStore(lookup.WithAdvantage([]lookup.AdvantageRow{
			{StandardScoreSum: 380, Averages: map[string]float64{"u1": 900}},
			{StandardScoreSum: 390, Averages: map[string]float64{"u1": 930}},
		}))

		Convey("The nearest row is used", func() {
			v, ok := store.Advantage(388, "u1")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 930.0)
		})

		Convey("A university without a column reports false", func() {
			_, ok := store.Advantage(388, "u2")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestCumulativePercentile(t *testing.T) {
	Convey("Given a percentile table", t, func() {
		store := lookup.NewStore(lookup.WithPercentile([]lookup.PercentilePoint{
			{StandardScoreSum: 286.55, Percentile: 80},
			{StandardScoreSum: 400, Percentile: 1.5},
			{StandardScoreSum: 350, Percentile: 20},
		}))

		Convey("The first key not above the sum wins", func() {
			p, err := store.CumulativePercentile(360)
			So(err, ShouldBeNil)
			So(p, ShouldEqual, 20.0)
			p, _ = store.CumulativePercentile(400)
			So(p, ShouldEqual, 1.5)
		})

		Convey("Sums below the table are extrapolated and clamped", func() {
			p, _ := store.CumulativePercentile(243.275)
			So(p, ShouldAlmostEqual, 89.5, 0.01)
			p, _ = store.CumulativePercentile(100)
			So(p, ShouldEqual, 99.0)
		})

		Convey("An empty table errors", func() {
			_, err := lookup.NewStore().CumulativePercentile(300)
			So(err, ShouldEqual, lookup.ErrEmptyTable)
		})
	})
}
