package simulate

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/nvoss/modelarena/internal/domain/model"
)

func TestCheckOrdering(t *testing.T) {
	Convey("Given leaderboard orderings", t, func() {
		Convey("A correctly ordered board passes", func() {
			board := []model.Model{
				{Name: "Alpha", Rating: 1550, WinRate: 80},
				{Name: "Beta", Rating: 1500, WinRate: 60},
				{Name: "Delta", Rating: 1500, WinRate: 60},
				{Name: "Gamma", Rating: 1450, WinRate: 10},
			}
			So(checkOrdering(board), ShouldBeNil)
		})

		Convey("An empty or single-entry board passes", func() {
			So(checkOrdering(nil), ShouldBeNil)
			So(checkOrdering([]model.Model{{Name: "Solo"}}), ShouldBeNil)
		})

		Convey("A rating inversion is caught", func() {
			board := []model.Model{
				{Name: "Beta", Rating: 1450},
				{Name: "Alpha", Rating: 1550},
			}
			So(checkOrdering(board), ShouldNotBeNil)
		})

		Convey("A win rate tie-break violation is caught", func() {
			board := []model.Model{
				{Name: "Alpha", Rating: 1500, WinRate: 40},
				{Name: "Beta", Rating: 1500, WinRate: 60},
			}
			So(checkOrdering(board), ShouldNotBeNil)
		})

		Convey("A name tie-break violation is caught", func() {
			board := []model.Model{
				{Name: "Beta", Rating: 1500, WinRate: 50},
				{Name: "Alpha", Rating: 1500, WinRate: 50},
			}
			So(checkOrdering(board), ShouldNotBeNil)
		})
	})
}
