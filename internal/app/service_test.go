package service_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/nvoss/modelarena/internal/adapters/journal"
	"github.com/nvoss/modelarena/internal/adapters/repository"
	service "github.com/nvoss/modelarena/internal/app"
	"github.com/nvoss/modelarena/internal/domain/matchmaker"
	"github.com/nvoss/modelarena/internal/domain/model"
	"github.com/nvoss/modelarena/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func testCatalog() []model.Model {
	names := []string{"Alpha", "Beta", "Gamma"}
	models := make([]model.Model, 0, len(names))
	for _, name := range names {
		models = append(models, model.Model{
			ID:       "id-" + name,
			Name:     name,
			Provider: "test",
			Rating:   1500,
		})
	}
	return models
}

func startService(ctx context.Context, opts ...service.Option) *service.Service {
	opts = append(opts, service.WithSeedCatalog(testCatalog()))
	svc := service.New(opts...)
	So(svc.Start(ctx), ShouldBeNil)
	return svc
}

func findModel(models []model.Model, id string) (model.Model, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return model.Model{}, false
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh service", t, func() {
		svc := startService(ctx)
		defer svc.Stop()

		Convey("Then it reports started", func() {
			So(svc.Started(), ShouldBeTrue)
		})

		Convey("When Start is called again", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Started(), ShouldBeTrue)
		})

		Convey("When seeding twice", func() {
			inserted, err := svc.SeedIfEmpty(ctx)
			So(err, ShouldBeNil)
			So(inserted, ShouldEqual, 3)

			again, err := svc.SeedIfEmpty(ctx)
			So(err, ShouldBeNil)

			Convey("Then the second run inserts nothing", func() {
				So(again, ShouldEqual, 0)

				models, err := svc.Models(ctx)
				So(err, ShouldBeNil)
				So(len(models), ShouldEqual, 3)
			})
		})
	})
}

func TestServiceBattle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a seeded service", t, func() {
		svc := startService(ctx)
		defer svc.Stop()

		Convey("When the registry is empty", func() {
			_, err := svc.Battle(ctx)

			Convey("Then no matchup can be formed", func() {
				So(errors.Is(err, matchmaker.ErrEmptyCatalog), ShouldBeTrue)
			})
		})

		Convey("When models are seeded", func() {
			_, err := svc.SeedIfEmpty(ctx)
			So(err, ShouldBeNil)

			battle, err := svc.Battle(ctx)

			Convey("Then two distinct contenders are returned", func() {
				So(err, ShouldBeNil)
				So(battle.Model1.ID, ShouldNotBeEmpty)
				So(battle.Model2.ID, ShouldNotBeEmpty)
				So(battle.Model1.ID, ShouldNotEqual, battle.Model2.ID)
			})
		})
	})
}

func TestServiceVote(t *testing.T) {
	ctx := context.Background()

	Convey("Given a seeded service with an observable journal", t, func() {
		j := journal.NewMemoryJournal()
		svc := startService(ctx, service.WithJournal(j))
		Reset(svc.Stop)

		_, err := svc.SeedIfEmpty(ctx)
		So(err, ShouldBeNil)

		Convey("When Alpha beats Beta", func() {
			So(svc.Vote(ctx, "id-Alpha", "id-Beta"), ShouldBeNil)

			Convey("Then counters and ratings move zero-sum", func() {
				models, err := svc.Models(ctx)
				So(err, ShouldBeNil)

				alpha, ok := findModel(models, "id-Alpha")
				So(ok, ShouldBeTrue)
				beta, ok := findModel(models, "id-Beta")
				So(ok, ShouldBeTrue)

				So(alpha.Wins, ShouldEqual, 1)
				So(alpha.Losses, ShouldEqual, 0)
				So(beta.Wins, ShouldEqual, 0)
				So(beta.Losses, ShouldEqual, 1)
				So(alpha.Rating, ShouldAlmostEqual, 1516, 0.001)
				So(beta.Rating, ShouldAlmostEqual, 1484, 0.001)
			})

			Convey("Then the winner tops the leaderboard", func() {
				board, err := svc.Leaderboard(ctx)
				So(err, ShouldBeNil)
				So(board[0].ID, ShouldEqual, "id-Alpha")
				So(board[0].WinRate, ShouldEqual, 100.0)
				So(board[len(board)-1].ID, ShouldEqual, "id-Beta")
			})

			Convey("Then stats count the battle", func() {
				stats, err := svc.Stats(ctx)
				So(err, ShouldBeNil)
				So(stats.BattlesCompleted, ShouldEqual, 1)
				So(stats.TotalModels, ShouldEqual, 3)
				So(stats.TopModel, ShouldEqual, "Alpha")
			})

			Convey("Then stopping drains the audit record into the journal", func() {
				svc.Stop()
				count, err := j.Count(ctx)
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When the same outcome is submitted twice", func() {
			So(svc.Vote(ctx, "id-Alpha", "id-Beta"), ShouldBeNil)
			So(svc.Vote(ctx, "id-Alpha", "id-Beta"), ShouldBeNil)

			Convey("Then both votes count", func() {
				models, err := svc.Models(ctx)
				So(err, ShouldBeNil)

				alpha, _ := findModel(models, "id-Alpha")
				So(alpha.Wins, ShouldEqual, 2)

				stats, err := svc.Stats(ctx)
				So(err, ShouldBeNil)
				So(stats.BattlesCompleted, ShouldEqual, 2)
			})
		})

		Convey("When the vote is invalid", func() {
			Convey("A self vote is rejected", func() {
				err := svc.Vote(ctx, "id-Alpha", "id-Alpha")
				So(errors.Is(err, service.ErrSelfVote), ShouldBeTrue)
			})

			Convey("Blank ids are rejected", func() {
				err := svc.Vote(ctx, "  ", "id-Beta")
				So(errors.Is(err, service.ErrMissingID), ShouldBeTrue)
			})

			Convey("An unknown contender is rejected with state unchanged", func() {
				err := svc.Vote(ctx, "id-Alpha", "id-Ghost")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

				models, err := svc.Models(ctx)
				So(err, ShouldBeNil)
				alpha, _ := findModel(models, "id-Alpha")
				So(alpha.Wins, ShouldEqual, 0)
				So(alpha.Rating, ShouldEqual, 1500)
			})
		})
	})
}
