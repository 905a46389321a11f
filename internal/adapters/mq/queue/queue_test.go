package queue_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitscore/internal/adapters/mq/queue"
)

func TestInMemoryQueue(t *testing.T) {
	ctx := context.Background()

	Convey("Given a queue of capacity two", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))
		So(q.Capacity(), ShouldEqual, 2)

		Convey("Jobs are delivered in order", func() {
			So(q.Enqueue(ctx, queue.Job{SubmissionID: "a"}), ShouldBeNil)
			So(q.Enqueue(ctx, queue.Job{SubmissionID: "b"}), ShouldBeNil)
			So(q.Len(ctx), ShouldEqual, 2)
			ch := q.Dequeue(ctx)
			So((<-ch).SubmissionID, ShouldEqual, "a")
			So((<-ch).SubmissionID, ShouldEqual, "b")
		})

		Convey("A full queue rejects without blocking", func() {
			_ = q.Enqueue(ctx, queue.Job{})
			_ = q.Enqueue(ctx, queue.Job{})
			So(q.Enqueue(ctx, queue.Job{}), ShouldEqual, queue.ErrFull)
		})

		Convey("A cancelled context rejects", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			So(q.Enqueue(cctx, queue.Job{}), ShouldEqual, context.Canceled)
		})

		Convey("Close drains then closes the channel", func() {
			_ = q.Enqueue(ctx, queue.Job{SubmissionID: "last"})
			So(q.Close(), ShouldBeNil)
			So(q.Close(), ShouldBeNil)
			So(q.IsClosed(), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Job{}), ShouldEqual, queue.ErrClosed)

			ch := q.Dequeue(ctx)
			j, ok := <-ch
			So(ok, ShouldBeTrue)
			So(j.SubmissionID, ShouldEqual, "last")
			_, ok = <-ch
			So(ok, ShouldBeFalse)
		})
	})
}
