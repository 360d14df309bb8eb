package rating_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/nvoss/modelarena/internal/domain/rating"
)

func TestEngine_Update(t *testing.T) {
	Convey("Given an engine with defaults", t, func() {
		e := rating.New()

		Convey("When two equally rated models battle", func() {
			w, l := e.Update(1500, 1500)

			Convey("Then the winner gains half of K", func() {
				So(w, ShouldAlmostEqual, 1516, 0.001)
				So(l, ShouldAlmostEqual, 1484, 0.001)
			})
		})

		Convey("When a strong favorite wins", func() {
			w, l := e.Update(2000, 1200)

			Convey("Then the rating moves only slightly", func() {
				So(w-2000, ShouldBeLessThan, 1)
				So(w, ShouldBeGreaterThan, 2000)
				So(l, ShouldBeLessThan, 1200)
			})
		})

		Convey("When an underdog wins", func() {
			w, l := e.Update(1200, 2000)

			Convey("Then the swing approaches K", func() {
				So(w-1200, ShouldBeGreaterThan, 30)
				So(2000-l, ShouldBeGreaterThan, 30)
			})
		})

		Convey("Then every update is zero-sum", func() {
			pairs := [][2]float64{{1500, 1500}, {1800, 1400}, {1000, 2400}, {1499.5, 1500.5}}
			for _, p := range pairs {
				w, l := e.Update(p[0], p[1])
				So(w-p[0], ShouldAlmostEqual, -(l - p[1]), 1e-9)
			}
		})
	})
}

func TestEngine_Expected(t *testing.T) {
	Convey("Given an engine with defaults", t, func() {
		e := rating.New()

		Convey("Then equal ratings give a 50% expectation", func() {
			So(e.Expected(1500, 1500), ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("And a 400 point gap gives roughly 10:1 odds", func() {
			So(e.Expected(1900, 1500), ShouldAlmostEqual, 10.0/11.0, 1e-9)
		})
	})
}

func TestEngine_Options(t *testing.T) {
	Convey("Given an engine with a custom K and base", t, func() {
		e := rating.New(rating.WithK(16), rating.WithBaseRating(1000))

		Convey("Then the base rating is exposed for seeding", func() {
			So(e.Base(), ShouldEqual, 1000)
		})

		Convey("And the update magnitude follows the custom K", func() {
			w, _ := e.Update(1000, 1000)
			So(w, ShouldAlmostEqual, 1008, 0.001)
		})
	})

	Convey("Given invalid option values", t, func() {
		e := rating.New(rating.WithK(-3), rating.WithBaseRating(0))

		Convey("Then the defaults are kept", func() {
			So(e.Base(), ShouldEqual, rating.DefaultBase)
			w, _ := e.Update(1500, 1500)
			So(w, ShouldAlmostEqual, 1516, 0.001)
		})
	})
}
