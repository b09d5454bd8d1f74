package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/panelkit/internal/adapters/http/api"
	"github.com/okian/panelkit/internal/config"
	"github.com/okian/panelkit/pkg/logger"
	"github.com/okian/panelkit/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func writePages(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	page := "# Status\n\n<ValueGauge value={64} label=\"Focus\" />\n"
	if err := os.WriteFile(filepath.Join(dir, "index.mdx"), []byte(page), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRoutes(t *testing.T) {
	convey.Convey("Given a started service built from configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.PagesDir = writePages(t)
		cfg.Watch = false

		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		h := routes(ctx, svc)
		get := func(target string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))
			return w
		}

		convey.Convey("The built home page is served with its widget", func() {
			w := get("/pages/")
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "Focus: 64%")
		})

		convey.Convey("The root redirects to the pages index", func() {
			w := get("/")
			convey.So(w.Code, convey.ShouldEqual, http.StatusFound)
			convey.So(w.Header().Get("Location"), convey.ShouldEqual, "/pages/")
		})

		convey.Convey("Widget, docs and stats routes are mounted", func() {
			convey.So(get("/widgets/gauge?value=5").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/stats").Body.String(), convey.ShouldContainSubstring, `"pages":1`)
		})

		convey.Convey("Every response carries a request ID", func() {
			convey.So(get("/pages/missing").Header().Get(api.RequestIDHeader), convey.ShouldNotBeEmpty)
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("updateSystemMetrics publishes process gauges", t, func() {
		updateSystemMetrics()
		n, err := testutil.GatherAndCount(metrics.GetRegistry(), "panelkit_system_goroutines")
		convey.So(err, convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, 1)
	})
}

func TestStartSystemMetricsUpdaterStops(t *testing.T) {
	convey.Convey("The updater returns once its context is cancelled", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			startSystemMetricsUpdater(ctx)
			close(done)
		}()
		cancel()
		<-done
		convey.So(ctx.Err(), convey.ShouldNotBeNil)
	})
}
