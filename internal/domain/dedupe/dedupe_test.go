package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitscore/internal/domain/dedupe"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("A new submission is recorded", func() {
			So(d.SeenAndRecord(ctx, "sub-1"), ShouldBeFalse)
			So(d.Size(), ShouldEqual, 1)
		})

		Convey("A repeated submission is reported as seen", func() {
			d.SeenAndRecord(ctx, "sub-1")
			So(d.SeenAndRecord(ctx, "sub-1"), ShouldBeTrue)
			So(d.Size(), ShouldEqual, 1)
		})

		Convey("Unrecord allows a retry", func() {
			d.SeenAndRecord(ctx, "sub-1")
			d.Unrecord(ctx, "sub-1")
			So(d.Size(), ShouldEqual, 0)
			So(d.SeenAndRecord(ctx, "sub-1"), ShouldBeFalse)
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(2))
		d.SeenAndRecord(ctx, "a")
		d.SeenAndRecord(ctx, "b")
		d.SeenAndRecord(ctx, "c")

		Convey("The oldest id is evicted", func() {
			So(d.Size(), ShouldEqual, 2)
			So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
			So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
		})
	})

	Convey("Given concurrent submitters of the same id", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		var fresh atomic.Int64
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if !d.SeenAndRecord(ctx, "same") {
					fresh.Add(1)
				}
				d.SeenAndRecord(ctx, fmt.Sprintf("id-%d", i))
			}(i)
		}
		wg.Wait()

		So(fresh.Load(), ShouldEqual, int64(1))
		So(d.Size(), ShouldEqual, 51)
	})
}
