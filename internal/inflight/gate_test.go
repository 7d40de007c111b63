package inflight_test

import (
	"sync"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spec-kit/staffing-portal/internal/inflight"
)

func TestGate(t *testing.T) {
	Convey("Given a gate", t, func() {
		gate := inflight.NewGate()
		key := inflight.Key("sid", "add-task")

		Convey("A second acquire fails until the first releases", func() {
			release, ok := gate.Acquire(key)
			So(ok, ShouldBeTrue)
			So(gate.Running(key), ShouldBeTrue)

			_, again := gate.Acquire(key)
			So(again, ShouldBeFalse)

			release()
			release()
			So(gate.Running(key), ShouldBeFalse)

			_, ok = gate.Acquire(key)
			So(ok, ShouldBeTrue)
		})

		Convey("Different sessions do not block each other", func() {
			_, ok1 := gate.Acquire(inflight.Key("a", "add-task"))
			_, ok2 := gate.Acquire(inflight.Key("b", "add-task"))
			So(ok1, ShouldBeTrue)
			So(ok2, ShouldBeTrue)
		})

		Convey("Concurrent acquires admit exactly one", func() {
			var admitted int32
			var wg sync.WaitGroup
			for i := 0; i < 32; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, ok := gate.Acquire(key); ok {
						atomic.AddInt32(&admitted, 1)
					}
				}()
			}
			wg.Wait()
			So(atomic.LoadInt32(&admitted), ShouldEqual, int32(1))
		})
	})
}
