package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"chainrelay/internal/config"
	"chainrelay/internal/core"
	"chainrelay/internal/endpoint"
	"chainrelay/internal/http/handler"
	"chainrelay/internal/http/handler/middleware"
	"chainrelay/internal/http/payload"
	"chainrelay/internal/http/server"
	"chainrelay/internal/metrics"
	"chainrelay/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const (
	startTimeout = time.Minute
	stopTimeout  = 30 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the submission API, the outbox dispatcher and the resubmitter",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		app := fx.New(
			fx.Supply(cfg, logger),
			fx.Provide(
				newMetrics,
				provideDatabase,
				func(r *repository.Repository) repository.Store { return r },
				func(r *repository.Repository) endpoint.Source { return r },
				newRegistry,
				provideChains,
				provideMessaging,
				provideService,
				provideDispatcher,
				newResubmitter,
			),
			fx.Invoke(startHTTP, startDispatcher, startResubmitter),
			fx.WithLogger(func() fxevent.Logger {
				return fxevent.NopLogger
			}),
		)

		startCtx, cancel := context.WithTimeout(context.Background(), startTimeout)
		defer cancel()
		if err := app.Start(startCtx); err != nil {
			logger.Errorw("failed to start application", "error", err)
			return err
		}

		<-app.Done()
		logger.Infow("shutting down")

		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		return app.Stop(stopCtx)
	},
}

func provideDatabase(lc fx.Lifecycle, logger *zap.SugaredLogger, cfg config.App) (*repository.Repository, error) {
	gdb, repo, err := openDatabase(logger, cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(gdb.Close))
	return repo, nil
}

func provideChains(logger *zap.SugaredLogger, cfg config.App, registry *endpoint.Registry) (chainClients, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	return dialChains(ctx, logger, cfg, registry)
}

func provideMessaging(lc fx.Lifecycle, logger *zap.SugaredLogger, cfg config.App) (messaging, error) {
	m, err := connectMessaging(logger, cfg)
	if err != nil {
		return messaging{}, err
	}
	lc.Append(fx.StopHook(m.close))
	return m, nil
}

func provideService(logger *zap.SugaredLogger, store repository.Store, clients chainClients, msg messaging, m *metrics.Metrics) *core.Service {
	relayer := core.NewRelayer(logger, store, clients.adapters, m)
	logger.Infow("relayer ready", "chains", relayer.Keys())
	spend := core.NewSpendCoordinator(logger, msg.credits, store)
	return core.NewService(logger, store, relayer, spend)
}

func provideDispatcher(logger *zap.SugaredLogger, cfg config.App, store repository.Store, msg messaging, m *metrics.Metrics) *core.Dispatcher {
	return core.NewDispatcher(logger, store, msg.publisher, m, cfg.Outbox.BatchSize)
}

func startHTTP(lc fx.Lifecycle, sd fx.Shutdowner, logger *zap.SugaredLogger, cfg config.App, service *core.Service, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	handler.NewRelayHandler(logger, payload.DecodeValidator{}, service).Register(mux)
	mux.Handle(handler.Metrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))

	hdlr := middleware.NewLoggingMiddleware(logger).Logging(mux)
	hdlr = middleware.NewRequestIDMiddleware().RequestID(hdlr)

	srv := server.NewHTTP(logger, hdlr, cfg.Server.Port)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			errCh := srv.Run()
			go func() {
				if err := <-errCh; err != nil {
					logger.Errorw("http server stopped", "error", err)
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: srv.Shutdown,
	})
}

func startDispatcher(lc fx.Lifecycle, logger *zap.SugaredLogger, cfg config.App, d *core.Dispatcher) {
	runInBackground(lc, func(ctx context.Context) {
		_ = d.Run(ctx, cfg.Outbox.Interval)
	})
	logger.Infow("outbox dispatcher scheduled", "interval", cfg.Outbox.Interval.String())
}

func startResubmitter(lc fx.Lifecycle, logger *zap.SugaredLogger, r *core.Resubmitter) {
	runInBackground(lc, func(ctx context.Context) {
		runEvery(ctx, r.GracePeriod(), func(ctx context.Context) {
			if _, err := r.Sweep(ctx); err != nil && ctx.Err() == nil {
				logger.Errorw("resubmission sweep failed", "error", err)
			}
		})
	})
	logger.Infow("resubmitter scheduled", "interval", r.GracePeriod().String())
}

// runInBackground runs fn from OnStart until OnStop cancels it, and waits for it to return.
func runInBackground(lc fx.Lifecycle, fn func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				fn(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return fmt.Errorf("background worker did not stop: %w", stopCtx.Err())
			}
		},
	})
}

// runEvery calls fn at once and then every interval until ctx is done.
func runEvery(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		fn(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
