package loadgen_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitscore/internal/adapters/http/api"
	"github.com/okian/admitscore/internal/adapters/loader"
	service "github.com/okian/admitscore/internal/app"
	"github.com/okian/admitscore/internal/domain/model"
	"github.com/okian/admitscore/internal/loadgen"
	"github.com/okian/admitscore/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func TestGenerator(t *testing.T) {
	Convey("Given two generators with the same seed", t, func() {
		a := loadgen.NewGenerator(7).Candidates(50)
		b := loadgen.NewGenerator(7).Candidates(50)

		Convey("Then they produce the same candidates", func() {
			So(a, ShouldResemble, b)
		})

		Convey("Then every candidate reports the core subjects", func() {
			for _, c := range a {
				So(c.ID, ShouldNotBeEmpty)
				for _, kind := range []model.SubjectKind{model.KindKorean, model.KindMath, model.KindEnglish, model.KindHistory} {
					s, ok := c.First(kind)
					So(ok, ShouldBeTrue)
					So(s.Reported(), ShouldBeTrue)
				}
				inq := len(c.Inquiry(model.KindScience)) + len(c.Inquiry(model.KindSociety))
				So(inq, ShouldBeBetweenOrEqual, 1, 2)
			}
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given admitd serving the sample catalog", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cat, err := loader.Load(ctx, loader.Files{
			Conditions: "../../data/conditions.yaml",
			Tables:     "../../data/tables.yaml",
			Cutoffs:    "../../data/cutoffs.yaml",
		})
		So(err, ShouldBeNil)
		svc := service.New(cat, service.WithWorkerCount(4), service.WithQueueSize(64))
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(context.Background()) }()

		srv := httptest.NewServer(api.NewServer(svc).Routes())
		defer srv.Close()

		Convey("When a load run submits candidates", func() {
			cfg := loadgen.DefaultConfig()
			cfg.BaseURL = srv.URL
			cfg.Candidates = 25
			cfg.Workers = 4
			cfg.PollTimeout = 10 * time.Second
			cfg.PollInterval = 10 * time.Millisecond
			stats, err := loadgen.Run(ctx, cfg)

			Convey("Then every submission is accepted and scored", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 25)
				So(stats.Accepted, ShouldEqual, 25)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Verified, ShouldEqual, 25)
				So(stats.Incomplete, ShouldEqual, 0)
				So(stats.Throughput(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the service is unreachable", func() {
			cfg := loadgen.DefaultConfig()
			cfg.BaseURL = "http://127.0.0.1:1"
			cfg.Timeout = time.Second
			_, err := loadgen.Run(ctx, cfg)
			So(err, ShouldNotBeNil)
		})
	})
}
