package matchmaker_test

import (
	"context"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/nvoss/modelarena/internal/domain/matchmaker"
	"github.com/nvoss/modelarena/internal/domain/model"
)

func catalogOf(names ...string) []model.Model {
	models := make([]model.Model, len(names))
	for i, n := range names {
		models[i] = model.Model{ID: "id-" + n, Name: n, Rating: 1500}
	}
	return models
}

func TestMatchmaker_Next(t *testing.T) {
	Convey("Given an empty catalog", t, func() {
		m := matchmaker.New(matchmaker.WithSeed(1))

		Convey("Then matchmaking fails with the empty catalog kind", func() {
			_, err := m.Next(context.Background(), nil)
			So(err, ShouldEqual, matchmaker.ErrEmptyCatalog)
		})
	})

	Convey("Given a catalog with a single model", t, func() {
		m := matchmaker.New(matchmaker.WithSeed(1))

		Convey("Then matchmaking reports insufficient models", func() {
			_, err := m.Next(context.Background(), catalogOf("solo"))
			So(err, ShouldEqual, matchmaker.ErrInsufficientModels)
		})
	})

	Convey("Given a catalog with several models", t, func() {
		m := matchmaker.New(matchmaker.WithSeed(42))
		catalog := catalogOf("a", "b", "c", "d")

		Convey("Then the pair is always distinct", func() {
			for i := 0; i < 500; i++ {
				battle, err := m.Next(context.Background(), catalog)
				So(err, ShouldBeNil)
				So(battle.Model1.ID, ShouldNotEqual, battle.Model2.ID)
			}
		})
	})
}

func TestMatchmaker_Reproducibility(t *testing.T) {
	Convey("Given two matchmakers with the same injected source", t, func() {
		catalog := catalogOf("a", "b", "c", "d", "e")
		m1 := matchmaker.New(matchmaker.WithRand(rand.New(rand.NewSource(7))))
		m2 := matchmaker.New(matchmaker.WithRand(rand.New(rand.NewSource(7))))

		Convey("Then they produce identical matchup sequences", func() {
			for i := 0; i < 50; i++ {
				b1, err1 := m1.Next(context.Background(), catalog)
				b2, err2 := m2.Next(context.Background(), catalog)
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(b1.Model1.ID, ShouldEqual, b2.Model1.ID)
				So(b1.Model2.ID, ShouldEqual, b2.Model2.ID)
			}
		})
	})
}

func TestMatchmaker_ExposureBias(t *testing.T) {
	Convey("Given one heavily exposed model among fresh ones", t, func() {
		m := matchmaker.New(matchmaker.WithSeed(99))
		catalog := catalogOf("veteran", "fresh1", "fresh2")
		catalog[0].Wins = 400
		catalog[0].Losses = 600

		Convey("When drawing many matchups", func() {
			const draws = 3000
			appearances := map[string]int{}
			for i := 0; i < draws; i++ {
				battle, err := m.Next(context.Background(), catalog)
				So(err, ShouldBeNil)
				appearances[battle.Model1.ID]++
				appearances[battle.Model2.ID]++
			}

			Convey("Then under-sampled models appear far more often", func() {
				So(appearances["id-fresh1"], ShouldBeGreaterThan, appearances["id-veteran"])
				So(appearances["id-fresh2"], ShouldBeGreaterThan, appearances["id-veteran"])
			})
		})
	})
}

func TestMatchmaker_CanceledContext(t *testing.T) {
	Convey("Given a canceled context", t, func() {
		m := matchmaker.New(matchmaker.WithSeed(1))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then matchmaking returns the context error", func() {
			_, err := m.Next(ctx, catalogOf("a", "b"))
			So(err, ShouldEqual, context.Canceled)
		})
	})
}
