package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/winedex/internal/adapters/repository"
	app "github.com/okian/winedex/internal/app"
	"github.com/okian/winedex/internal/config"
	"github.com/okian/winedex/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When run is cancelled right away", func() {
			t.Setenv("WINEDEX_STORE", repository.BackendMemory)
			t.Setenv("WINEDEX_ADDR", "127.0.0.1:0")
			t.Setenv("WINEDEX_LOG_LEVEL", "error")

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			convey.Convey("Then it starts and shuts down cleanly", func() {
				convey.So(run(ctx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			t.Setenv("WINEDEX_STORE", "cassette")

			convey.Convey("Then run reports it", func() {
				convey.So(run(context.Background()), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		ctx := context.Background()
		log := logger.Nop()

		convey.Convey("When building the handler", func() {
			svc := app.New(
				app.WithLogger(log),
				app.WithStore(repository.NewMemoryStore()),
				app.WithSeedSampleData(true),
				app.WithSystemMetrics(false),
			)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			h := newHandler(ctx, svc, config.New(), log)

			convey.Convey("Then it serves the API, the docs and the gallery", func() {
				for _, path := range []string{"/api/wines", "/openapi.yaml", "/api-docs", "/", "/healthz"} {
					w := httptest.NewRecorder()
					h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})
		})

		convey.Convey("When serving until the context is cancelled", func() {
			srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
			ctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
			defer cancel()

			convey.Convey("Then serve returns without error", func() {
				convey.So(serve(ctx, srv, log), convey.ShouldBeNil)
			})
		})

		convey.Convey("When applying log levels", func() {
			applyLogLevel(ctx, log, "debug")
			convey.So(logger.Level().String(), convey.ShouldEqual, "DEBUG")

			convey.Convey("Then an invalid level falls back to info", func() {
				applyLogLevel(ctx, log, "chatty")
				convey.So(logger.Level().String(), convey.ShouldEqual, "INFO")
			})
		})
	})
}
