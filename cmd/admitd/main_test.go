package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitscore/internal/adapters/http/api"
	"github.com/okian/admitscore/internal/adapters/repository"
	"github.com/okian/admitscore/internal/config"
	"github.com/okian/admitscore/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.New()
	cfg.ConditionsFile = "../../data/conditions.yaml"
	cfg.TablesFile = "../../data/tables.yaml"
	cfg.CutoffsFile = "../../data/cutoffs.yaml"
	cfg.SQLitePath = filepath.Join(t.TempDir(), "results.db")
	cfg.WorkerCount = 2
	return cfg
}

func TestBuildService(t *testing.T) {
	convey.Convey("Given the sample catalog configuration", t, func() {
		ctx := context.Background()
		cfg := testConfig(t)

		convey.Convey("When building the service", func() {
			svc, closeCatalog, err := buildService(ctx, cfg)
			convey.So(err, convey.ShouldBeNil)
			defer closeCatalog()

			convey.Convey("Then every sample university is available", func() {
				convey.So(svc.Universities(), convey.ShouldHaveLength, 5)
				convey.So(svc.GetStats()["universities"], convey.ShouldEqual, 5)
			})

			convey.Convey("Then the HTTP API scores the sample candidate", func() {
				h := api.NewServer(svc).Routes()
				body := `{"candidate":{"id":"sample","scores":[
					{"kind":"korean","subject":"국어","standard_score":131,"percentile":96,"grade":1},
					{"kind":"math","subject":"미적분","standard_score":135,"percentile":97,"grade":1},
					{"kind":"english","subject":"영어","grade":2},
					{"kind":"history","subject":"한국사","grade":3},
					{"kind":"science","subject":"물리학Ⅰ","standard_score":67,"percentile":93,"grade":2},
					{"kind":"society","subject":"생활과윤리","standard_score":65,"percentile":92,"grade":2}]}}`
				req := httptest.NewRequest(http.MethodPost, "/v1/score", strings.NewReader(body))
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"university_id":"DH-HUM"`)
			})
		})

		convey.Convey("When the conditions file is missing", func() {
			cfg.ConditionsFile = "missing.yaml"
			_, _, err := buildService(ctx, cfg)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestOpenStore(t *testing.T) {
	convey.Convey("Given a configuration", t, func() {
		ctx := context.Background()
		cfg := testConfig(t)

		convey.Convey("The memory store is the default", func() {
			s, err := openStore(ctx, cfg)
			convey.So(err, convey.ShouldBeNil)
			_, ok := s.(*repository.MemoryStore)
			convey.So(ok, convey.ShouldBeTrue)
		})

		convey.Convey("The sqlite store opens the configured file", func() {
			cfg.ResultStore = "SQLite"
			s, err := openStore(ctx, cfg)
			convey.So(err, convey.ShouldBeNil)
			defer s.Close()
			_, ok := s.(*repository.SQLiteStore)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(s.Count(ctx), convey.ShouldEqual, 0)
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Updating system metrics does not panic", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)
	})
}
