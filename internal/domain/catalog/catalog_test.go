package catalog_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/nvoss/modelarena/internal/domain/catalog"
)

func TestDefault(t *testing.T) {
	Convey("Given the default seed catalog", t, func() {
		models := catalog.Default(1500)

		Convey("Then it contains the full built-in roster", func() {
			So(len(models), ShouldEqual, 8)
		})

		Convey("Then every model starts at the base rating with zero counters", func() {
			for _, m := range models {
				So(m.Rating, ShouldEqual, 1500)
				So(m.Wins, ShouldEqual, 0)
				So(m.Losses, ShouldEqual, 0)
			}
		})

		Convey("Then ids are unique and fields populated", func() {
			seen := map[string]bool{}
			for _, m := range models {
				So(m.ID, ShouldNotBeEmpty)
				So(seen[m.ID], ShouldBeFalse)
				seen[m.ID] = true
				So(m.Name, ShouldNotBeEmpty)
				So(m.Provider, ShouldNotBeEmpty)
				So(len(m.Capabilities), ShouldBeGreaterThan, 0)
			}
		})

		Convey("Then successive calls mint fresh ids", func() {
			again := catalog.Default(1500)
			So(again[0].ID, ShouldNotEqual, models[0].ID)
		})
	})
}
