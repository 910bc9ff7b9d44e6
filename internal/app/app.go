package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fixpoint/fixpoint/internal/config"
	"github.com/fixpoint/fixpoint/internal/server/http/handlers"
	"github.com/fixpoint/fixpoint/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewServiceFacade,
		func(f *ServiceFacade) handlers.ServiceFacade { return f },
		newHTTPServer,
		newStaleMonitor,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type monitorParams struct {
	fx.In

	Facade *ServiceFacade
	Config *config.Config
	Logger *slog.Logger
}

func newStaleMonitor(p monitorParams) *worker.StaleOrderMonitor {
	return worker.NewStaleOrderMonitor(
		p.Facade,
		p.Config.StaleCheckInterval,
		p.Config.StaleThreshold,
		p.Config.StaleBatchSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Monitor    *worker.StaleOrderMonitor
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting fixpoint", slog.String("addr", p.Server.Addr))
			p.Monitor.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Monitor.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("fixpoint stopped")
			return nil
		},
	})
}
