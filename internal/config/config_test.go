package config_test

import (
	"testing"

	"github.com/AI-Engineer2025/Masterblog-API/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":5002")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.SeedFile, convey.ShouldEqual, "")
		})
	})
}
