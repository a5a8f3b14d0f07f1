package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/cart"
	"github.com/polkiloo/storefront/internal/checkout"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/history"
	"github.com/polkiloo/storefront/internal/message"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/usecase"
	"github.com/polkiloo/storefront/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStorefrontFacade,
		func(f *StorefrontFacade) handlers.StoreFacade { return f },
		newHTTPServer,
		newCartRegistry,
		newHistoryMirror,
		newCheckoutWorkflow,
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

type cartParams struct {
	fx.In

	Snapshots cart.Snapshotter
	Config    *config.Config
	Logger    *slog.Logger
}

func newCartRegistry(p cartParams) *cart.Registry {
	return cart.NewRegistry(p.Snapshots, p.Config.CartTTL, p.Logger)
}

func newHistoryMirror(cfg *config.Config) *history.Mirror {
	return history.NewMirror(cfg.HistorySize)
}

type workflowParams struct {
	fx.In

	Orders  *usecase.OrderUseCase
	History *history.Mirror
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Registry
}

func newCheckoutWorkflow(p workflowParams) *checkout.Workflow {
	return checkout.NewWorkflow(
		p.Orders,
		p.History,
		message.Destinations{Email: p.Config.OrderEmail, ChatNumber: p.Config.ChatNumber},
		p.Logger,
		p.Metrics,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.NotificationDispatcher
	Carts      *cart.Registry
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting storefront", slog.String("addr", p.Server.Addr))
			p.Dispatcher.Start(context.WithoutCancel(ctx))
			p.Carts.Start(context.WithoutCancel(ctx), p.Config.CartSweep)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Carts.Stop()
			p.Dispatcher.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("storefront stopped")
			return nil
		},
	})
}
