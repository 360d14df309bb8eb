package worker_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/nvoss/modelarena/internal/adapters/journal"
	"github.com/nvoss/modelarena/internal/adapters/mq/queue"
	"github.com/nvoss/modelarena/internal/adapters/mq/worker"
	"github.com/nvoss/modelarena/internal/domain/model"
	"github.com/nvoss/modelarena/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func waitForCount(ctx context.Context, j journal.Journal, want int64) bool {
	deadline := time.After(2 * time.Second)
	for {
		if count, err := j.Count(ctx); err == nil && count >= want {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPool(t *testing.T) {
	ctx := context.Background()

	Convey("Given a worker pool over a vote queue", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(64))
		j := journal.NewMemoryJournal()
		pool := worker.NewPool(q, j, worker.WithWorkerCount(3))

		Convey("When votes are enqueued and the pool runs", func() {
			pool.Start(ctx)
			for i := 0; i < 20; i++ {
				vote := testVote(i)
				So(q.Enqueue(ctx, vote), ShouldBeTrue)
			}

			Convey("Then every vote lands in the journal", func() {
				So(waitForCount(ctx, j, 20), ShouldBeTrue)

				So(q.Close(), ShouldBeNil)
				pool.Wait()

				count, err := j.Count(ctx)
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 20)
			})
		})

		Convey("When the queue closes with votes still buffered", func() {
			for i := 0; i < 10; i++ {
				So(q.Enqueue(ctx, testVote(i)), ShouldBeTrue)
			}
			So(q.Close(), ShouldBeNil)

			pool.Start(ctx)
			pool.Wait()

			Convey("Then the pool drains everything before exiting", func() {
				count, err := j.Count(ctx)
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 10)
			})
		})

		Convey("When Start is called twice", func() {
			pool.Start(ctx)
			pool.Start(ctx)
			So(q.Close(), ShouldBeNil)

			Convey("Then the second call is a no-op and Wait returns", func() {
				pool.Wait()
				count, err := j.Count(ctx)
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 0)
			})
		})
	})
}

func testVote(n int) model.Vote {
	return model.Vote{
		ID:        fmt.Sprintf("vote-%d", n),
		WinnerID:  "winner",
		LoserID:   "loser",
		Timestamp: time.Now().UTC(),
	}
}
