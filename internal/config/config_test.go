package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitscore/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.ResultStore, convey.ShouldEqual, config.StoreMemory)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid settings", t, func() {
		cases := []func(*config.Config){
			func(c *config.Config) { c.Addr = "" },
			func(c *config.Config) { c.QueueSize = 0 },
			func(c *config.Config) { c.WorkerCount = -1 },
			func(c *config.Config) { c.BatchParallelism = 0 },
			func(c *config.Config) { c.MaxUniversitiesPerRequest = -5 },
			func(c *config.Config) { c.ConditionsFile = "" },
			func(c *config.Config) { c.ResultStore = "redis" },
			func(c *config.Config) { c.ResultStore = config.StoreSQLite; c.SQLitePath = "" },
		}
		for _, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		}

		convey.Convey("An unknown store names its kind", func() {
			cfg := config.New()
			cfg.ResultStore = "redis"
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrUnknownStore), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, `"redis"`)
		})
	})
}
