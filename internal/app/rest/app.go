package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Leyinc1/manuelbest/internal/config"
	v1 "github.com/Leyinc1/manuelbest/internal/http/v1"
)

type App struct {
	log        *slog.Logger
	deps       *v1.RouterDependencies
	httpServer *http.Server
}

func New(
	log *slog.Logger,
	deps *v1.RouterDependencies,
	cfg config.HTTPServer,
	serviceName string,
) *App {
	r := chi.NewRouter()

	v1.SetupRoutes(r, deps, log)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: cfg.Timeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return &App{
		log:        log,
		deps:       deps,
		httpServer: httpServer,
	}
}

func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

func (a *App) Run() error {
	const op = "app.rest.Run"
	a.log.With(slog.String("op", op)).Info("starting REST server", slog.String("addr", a.httpServer.Addr))

	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	const op = "app.rest.Stop"
	a.log.With(slog.String("op", op)).Info("stopping REST server")
	return a.httpServer.Shutdown(ctx)
}
