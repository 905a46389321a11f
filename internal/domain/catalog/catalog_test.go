package catalog_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitscore/internal/domain/catalog"
	"github.com/okian/admitscore/internal/domain/model"
)

func TestCatalog(t *testing.T) {
	Convey("Given a catalog with two conditions", t, func() {
		c := catalog.New(
			catalog.WithConditions(model.UniversityCondition{ID: "b"}, model.UniversityCondition{ID: "a"}),
			catalog.WithCutoffs(model.CutoffTable{UniversityID: "a"}),
		)

		Convey("Ids are sorted and conditions resolvable", func() {
			So(c.IDs(), ShouldResemble, []string{"a", "b"})
			_, ok := c.Condition("a")
			So(ok, ShouldBeTrue)
			_, ok = c.Cutoffs("b")
			So(ok, ShouldBeFalse)
			So(c.Store(), ShouldNotBeNil)
		})

		Convey("After Close nothing resolves", func() {
			So(c.Close(), ShouldBeNil)
			_, ok := c.Condition("a")
			So(ok, ShouldBeFalse)
			So(c.Store(), ShouldBeNil)
			So(c.Close(), ShouldEqual, catalog.ErrClosed)
		})
	})
}
