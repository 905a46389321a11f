package risk_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitscore/internal/domain/model"
	"github.com/okian/admitscore/internal/domain/risk"
)

func ptr(v float64) *float64 { return &v }

func TestCutoffBand(t *testing.T) {
	Convey("Given a full cutoff table", t, func() {
		table := model.CutoffTable{Thresholds: [10]float64{90, 85, 80, 75, 70, 65, 60, 55, 50, 45}}

		Convey("A score at a threshold takes that band", func() {
			So(risk.CutoffBand(80, table).Code, ShouldEqual, 3)
			So(risk.CutoffBand(79.9, table).Code, ShouldEqual, 2)
		})

		Convey("Scores above the top band are safest", func() {
			a := risk.CutoffBand(99, table)
			So(a.Code, ShouldEqual, 5)
			So(a.Label, ShouldEqual, risk.LabelSafe)
			So(a.DistanceFromCutoff, ShouldEqual, 29.0)
		})

		Convey("Scores below every threshold get the sentinel", func() {
			a := risk.CutoffBand(40, table)
			So(a.Code, ShouldEqual, model.RiskBelowRange)
			So(a.Label, ShouldEqual, risk.LabelOutOfRange)
		})
	})

	Convey("Given a table with no known thresholds", t, func() {
		So(risk.CutoffBand(50, model.CutoffTable{}).Code, ShouldEqual, 5)
	})

	Convey("Given a table with gaps", t, func() {
		table := model.CutoffTable{Thresholds: [10]float64{90, 0, 80, 75, 70, 65, 60, 55, 50, 45}}
		So(risk.CutoffBand(85, table).Code, ShouldEqual, 4)
	})

	Convey("Raising the score never worsens the band", t, func() {
		tables := []model.CutoffTable{
			{Thresholds: [10]float64{90, 85, 80, 75, 70, 65, 60, 55, 50, 45}},
			{Thresholds: [10]float64{90, 0, 80, 75, 0, 65, 60, 0, 50, 45}},
			{Thresholds: [10]float64{0, 0, 0, 75, 70, 65, 60, 55, 50, 45}},
			{Thresholds: [10]float64{95, 90, 85, 80, 0, 0, 0, 0, 0, 0}},
			{},
		}
		for _, table := range tables {
			prev := risk.CutoffBand(-10, table).Code
			for score := -10.0; score <= 110; score += 0.25 {
				code := risk.CutoffBand(score, table).Code
				So(code, ShouldBeGreaterThanOrEqualTo, prev)
				prev = code
			}
		}
	})
}

func TestGradeDifference(t *testing.T) {
	Convey("Given every tier", t, func() {
		for tier := 1; tier <= 5; tier++ {
			r, err := risk.GradeDifference(tier, 2.0, ptr(2.0))
			So(err, ShouldBeNil)
			So(r, ShouldBeGreaterThan, 0)

			low, _ := risk.GradeDifference(tier, 1.0, ptr(9.0))
			missing, _ := risk.GradeDifference(tier, 1.0, nil)
			So(missing, ShouldBeLessThan, low)
		}
	})

	Convey("Not-taken penalties are harsher at selective tiers", t, func() {
		top, _ := risk.GradeDifference(1, 2, nil)
		bottom, _ := risk.GradeDifference(5, 2, nil)
		So(top, ShouldBeLessThan, bottom)
	})

	Convey("A better grade never lowers the band", t, func() {
		a, _ := risk.GradeDifference(2, 2.0, ptr(1.5))
		b, _ := risk.GradeDifference(2, 2.0, ptr(3.5))
		So(a, ShouldBeGreaterThan, b)
		So(a, ShouldEqual, 5)
	})

	Convey("Unknown tiers error", t, func() {
		_, err := risk.GradeDifference(9, 2, ptr(2))
		So(errors.Is(err, risk.ErrUnknownTier), ShouldBeTrue)
	})
}

func TestAggregate(t *testing.T) {
	Convey("Aggregate averages available sub-risks only", t, func() {
		So(risk.Aggregate(risk.Some(4), risk.None, risk.Some(8)), ShouldEqual, 6.0)
		So(risk.Aggregate(risk.Some(0), risk.Some(6)), ShouldEqual, 3.0)
		So(risk.Aggregate(risk.None, risk.None), ShouldEqual, risk.NoData)
		So(risk.Aggregate(), ShouldEqual, risk.NoData)
	})
}

func TestGradeCutRisk(t *testing.T) {
	Convey("Given grade cuts", t, func() {
		r, ok := risk.GradeCutRisk(2.4, ptr(2.0), ptr(2.5))
		So(ok, ShouldBeTrue)
		So(r, ShouldEqual, -2)

		r, _ = risk.GradeCutRisk(1.0, nil, ptr(2.5))
		So(r, ShouldEqual, 8)

		r, _ = risk.GradeCutRisk(9.0, ptr(1.0), nil)
		So(r, ShouldEqual, -15)

		r, _ = risk.GradeCutRisk(1.0, ptr(5.0), nil)
		So(r, ShouldEqual, 10)

		_, ok = risk.GradeCutRisk(2.0, nil, nil)
		So(ok, ShouldBeFalse)

		Convey("Half steps round toward the safer code", func() {
			r, _ := risk.GradeCutRisk(2.5, ptr(2.0), nil)
			So(r, ShouldEqual, -2)
			r, _ = risk.GradeCutRisk(3.5, ptr(2.0), nil)
			So(r, ShouldEqual, -7)
			r, _ = risk.GradeCutRisk(1.5, ptr(2.0), nil)
			So(r, ShouldEqual, 3)
		})

		Convey("A zero cut counts as unknown", func() {
			r, ok := risk.GradeCutRisk(2.5, ptr(0), ptr(3.0))
			So(ok, ShouldBeTrue)
			So(r, ShouldEqual, 3)
			_, ok = risk.GradeCutRisk(2.5, ptr(0), ptr(0))
			So(ok, ShouldBeFalse)
		})
	})
}

func TestSubjectGradeAverage(t *testing.T) {
	Convey("Rankings and achievement bands are averaged together", t, func() {
		records := []risk.Record{
			{Subject: "math", Ranking: 2},
			{Subject: "math", Achievement: "B"},
			{Subject: "math", Achievement: "?"},
			{Subject: "korean", Ranking: 1},
		}
		avg, ok := risk.SubjectGradeAverage(records, "math")
		So(ok, ShouldBeTrue)
		So(avg, ShouldEqual, 2.5)

		_, ok = risk.SubjectGradeAverage(records, "physics")
		So(ok, ShouldBeFalse)
	})
}

func TestCompatibility(t *testing.T) {
	Convey("Given no subjects", t, func() {
		c, err := risk.EvaluateCompatibility(risk.CompatibilityInput{Tier: 3})
		So(err, ShouldBeNil)
		So(c.Total, ShouldEqual, risk.NoData)
		So(c.Empty, ShouldBeTrue)
	})

	Convey("Given required and encouraged subjects at tier 3", t, func() {
		c, err := risk.EvaluateCompatibility(risk.CompatibilityInput{
			Tier:       3,
			Required:   []risk.SubjectGrade{{Subject: "physics", Average: ptr(2.5)}},
			Encouraged: []risk.SubjectGrade{{Subject: "chemistry"}},
		})
		So(err, ShouldBeNil)
		So(c.Required[0].Risk, ShouldEqual, 9.0)
		So(c.Encouraged[0].Risk, ShouldEqual, -2.0)
		So(c.SubjectTotal.Value, ShouldAlmostEqual, (9.0*2-2)/3, 1e-9)
		So(c.MainTotal.Available, ShouldBeFalse)
		So(c.Total, ShouldAlmostEqual, c.SubjectTotal.Value, 1e-9)
	})

	Convey("Unknown tiers propagate the error", t, func() {
		_, err := risk.EvaluateCompatibility(risk.CompatibilityInput{
			Tier:     0,
			Required: []risk.SubjectGrade{{Subject: "physics", Average: ptr(2)}},
		})
		So(errors.Is(err, risk.ErrUnknownTier), ShouldBeTrue)
	})
}

func TestEvaluateSeries(t *testing.T) {
	Convey("Given a mixed series", t, func() {
		e := risk.EvaluateSeries([]risk.GradePair{
			{Subject: "math", Recommended: 2, Student: 1.5},
			{Subject: "physics", Recommended: 2, Student: 2.4},
			{Subject: "chemistry", Recommended: 2, Student: 5.5},
		})
		So(e.Subjects[0].Rating, ShouldEqual, risk.RatingExcellent)
		So(e.Subjects[1].Rating, ShouldEqual, risk.RatingSuitable)
		So(e.Subjects[1].Risk, ShouldEqual, 10)
		So(e.Subjects[2].Risk, ShouldEqual, 70)
		So(e.TotalRisk, ShouldEqual, 80)
		So(e.NormalizedRisk, ShouldEqual, 38)
		So(e.Overall, ShouldEqual, risk.RatingCaution)
		So(e.ImprovementNeeded, ShouldResemble, []string{"chemistry"})
	})

	Convey("An empty series is safe", t, func() {
		So(risk.EvaluateSeries(nil).Overall, ShouldEqual, risk.OverallSafe)
	})
}
