package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/winedex/internal/adapters/http/api"
	"github.com/okian/winedex/internal/adapters/http/site"
	"github.com/okian/winedex/internal/adapters/http/swagger"
	"github.com/okian/winedex/internal/adapters/repository"
	app "github.com/okian/winedex/internal/app"
	"github.com/okian/winedex/internal/config"
	"github.com/okian/winedex/internal/domain/classify"
	"github.com/okian/winedex/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// Use stderr since the logger may not be available yet
		os.Stderr.WriteString("winedex: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	applyLogLevel(ctx, log, cfg.LogLevel)

	store, err := repository.Open(ctx, cfg.Store, cfg.DataDir, repository.WithLogger(log.Named("store")))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithStore(store),
		app.WithClassifier(classify.New(classify.WithCurrentYear(cfg.CurrentYear))),
		app.WithSeedSampleData(cfg.SeedSampleData),
	)
	if err := svc.Start(ctx); err != nil {
		_ = store.Close()
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	watchConfig(ctx, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc, cfg, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return serve(ctx, srv, log)
}

// newHandler builds the router: JSON API, API docs and the gallery.
func newHandler(ctx context.Context, svc *app.Service, cfg *config.Config, log logger.Logger) http.Handler {
	apiServer := api.NewServer(svc, svc,
		api.WithLogger(log.Named("http")),
		api.WithAllowedOrigins(cfg.CORSAllowedOrigins),
	)
	swagger.Register(ctx, apiServer.Router())
	site.Register(ctx, apiServer.Router())
	return apiServer
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, log logger.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%w: %w", api.ErrServe, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(ctx, "shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Info(ctx, "server stopped")
		return nil
	})

	return g.Wait()
}

// applyLogLevel sets the global level, falling back to info on invalid input.
func applyLogLevel(ctx context.Context, log logger.Logger, level string) {
	if err := logger.SetLevelString(level); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
}

// watchConfig re-applies log_level whenever the config file changes.
// Other settings need a restart.
func watchConfig(ctx context.Context, log logger.Logger) {
	err := config.Watch(ctx, func(cfg *config.Config, err error) {
		if err != nil {
			log.Warn(ctx, "config reload failed", logger.Error(err))
			return
		}
		applyLogLevel(ctx, log, cfg.LogLevel)
		log.Info(ctx, "config reloaded", logger.String("log_level", cfg.LogLevel))
	})
	switch {
	case errors.Is(err, config.ErrNoConfigFile):
		log.Debug(ctx, "no config file to watch")
	case err != nil:
		log.Warn(ctx, "config watch unavailable", logger.Error(err))
	}
}
