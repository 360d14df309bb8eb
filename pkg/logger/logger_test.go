package logger_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/nvoss/modelarena/pkg/logger"
)

func TestLogger(t *testing.T) {
	ctx := context.Background()

	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then the global logger is retrievable", func() {
			log := logger.Get()
			So(log, ShouldNotBeNil)

			Convey("And named loggers derive from it", func() {
				named := logger.Named("test")
				So(named, ShouldNotBeNil)
				So(named.Named("nested"), ShouldNotBeNil)
			})

			Convey("And logging at every level does not panic", func() {
				So(func() {
					log.Debug(ctx, "debug", logger.String("k", "v"))
					log.Info(ctx, "info", logger.Int("n", 1))
					log.Warn(ctx, "warn", logger.Int64("n", 2), logger.Uint64("u", 3))
					log.Error(ctx, "error", logger.Float64("f", 1.5), logger.Error(errors.New("boom")))
				}, ShouldNotPanic)
			})
		})

		Convey("When setting log levels", func() {
			Convey("Known levels are accepted", func() {
				for _, level := range []string{"debug", "info", "WARN", "warning", "Error", ""} {
					So(logger.SetLevelString(level), ShouldBeNil)
				}
			})

			Convey("Unknown levels are rejected", func() {
				So(logger.SetLevelString("verbose"), ShouldNotBeNil)
			})
		})
	})
}
