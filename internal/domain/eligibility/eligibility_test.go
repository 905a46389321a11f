package eligibility_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitscore/internal/domain/eligibility"
	"github.com/okian/admitscore/internal/domain/model"
)

func candidate(math string, inquiry ...model.RawSubjectScore) model.Candidate {
	scores := []model.RawSubjectScore{{Kind: model.KindMath, Subject: math, StandardScore: 130, Grade: 2}}
	return model.Candidate{ID: "c1", Scores: append(scores, inquiry...)}
}

func sci(name string) model.RawSubjectScore {
	return model.RawSubjectScore{Kind: model.KindScience, Subject: name, StandardScore: 65, Grade: 2}
}

func soc(name string) model.RawSubjectScore {
	return model.RawSubjectScore{Kind: model.KindSociety, Subject: name, StandardScore: 65, Grade: 2}
}

func TestChecker(t *testing.T) {
	checker := eligibility.New()

	Convey("Given the math requirement", t, func() {
		cond := model.UniversityCondition{Math: model.MathCalculusOrGeometry}

		Convey("Statistics fails calculus-or-geometry", func() {
			v := checker.Check(candidate("math-statistics"), cond)
			So(v.Valid, ShouldBeFalse)
			So(v.Message, ShouldEqual, eligibility.MsgCalculusOrGeometry)
		})

		Convey("Geometry passes", func() {
			So(checker.Check(candidate("math-geometry"), cond).Valid, ShouldBeTrue)
		})

		Convey("Statistics-only universities reject calculus", func() {
			v := checker.Check(candidate("math-calculus"), model.UniversityCondition{Math: model.MathStatistics})
			So(v.Message, ShouldEqual, eligibility.MsgStatistics)
		})
	})

	Convey("Given an inquiry requirement of two science subjects", t, func() {
		cond := model.UniversityCondition{Inquiry: model.InquiryRequirement{Kind: model.KindScience, MinCount: 2}}

		Convey("One science and one society fails", func() {
			v := checker.Check(candidate("math-calculus", sci("physics-1"), soc("ethics")), cond)
			So(v.Valid, ShouldBeFalse)
			So(v.Message, ShouldEqual, "2 science inquiry subjects required")
		})

		Convey("Two science subjects pass", func() {
			v := checker.Check(candidate("math-calculus", sci("physics-1"), sci("chemistry-1")), cond)
			So(v, ShouldResemble, eligibility.Pass)
		})
	})

	Convey("Given requirements the checker does not recognise", t, func() {
		cand := candidate("math-statistics", soc("ethics"), soc("society-culture"))

		Convey("An unknown math requirement fails", func() {
			v := checker.Check(cand, model.UniversityCondition{Math: "calculus_or_geometry"})
			So(v.Valid, ShouldBeFalse)
			So(v.Message, ShouldContainSubstring, "calculus_or_geometry")
		})

		Convey("An unknown inquiry kind fails", func() {
			v := checker.Check(cand, model.UniversityCondition{
				Inquiry: model.InquiryRequirement{Kind: "sciences", MinCount: 2},
			})
			So(v.Valid, ShouldBeFalse)
			So(v.Message, ShouldContainSubstring, "sciences")
		})
	})

	Convey("Math is checked before inquiry", t, func() {
		cond := model.UniversityCondition{
			Math:    model.MathCalculusOrGeometry,
			Inquiry: model.InquiryRequirement{Kind: model.KindScience, MinCount: 2},
		}
		v := checker.Check(candidate("math-statistics"), cond)
		So(v.Message, ShouldEqual, eligibility.MsgCalculusOrGeometry)
	})
}
