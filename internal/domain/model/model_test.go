package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitscore/internal/domain/model"
)

func TestCandidate(t *testing.T) {
	Convey("Given a candidate", t, func() {
		c := model.Candidate{Scores: []model.RawSubjectScore{
			{Kind: model.KindMath, Subject: "math-statistics", Grade: 3},
			{Kind: model.KindScience, Subject: "physics-1", Grade: 1},
			{Kind: model.KindScience, Subject: "chemistry-1", Grade: 2},
			{Kind: model.KindScience, Subject: "biology-1", Grade: 2},
		}}

		Convey("The math track comes from the subject name", func() {
			So(c.MathTrack(), ShouldEqual, model.TrackStatistics)
			So(model.TrackOf("수학(미적)"), ShouldEqual, model.TrackCalculus)
			So(model.TrackOf("geometry"), ShouldEqual, model.TrackGeometry)
			So(model.TrackOf(""), ShouldEqual, model.TrackUnknown)
		})

		Convey("Inquiry is capped at two per kind", func() {
			So(len(c.Inquiry(model.KindScience)), ShouldEqual, 2)
			So(c.Inquiry(model.KindSociety), ShouldBeEmpty)
		})

		Convey("Only english and history are grade keyed", func() {
			So(model.KindEnglish.GradeKeyed(), ShouldBeTrue)
			So(model.KindKorean.GradeKeyed(), ShouldBeFalse)
			So(model.KindSociety.IsInquiry(), ShouldBeTrue)
		})
	})
}
