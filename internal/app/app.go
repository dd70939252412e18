package app

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/flow"
	"github.com/pudottapommin/ephemeral-messages-service/assets"
	"github.com/pudottapommin/ephemeral-messages-service/config"
	"github.com/pudottapommin/ephemeral-messages-service/internal/api"
	"github.com/pudottapommin/ephemeral-messages-service/internal/ui"
	"github.com/pudottapommin/ephemeral-messages-service/pkg/server"
	"github.com/pudottapommin/ephemeral-messages-service/pkg/storage"
	"github.com/pudottapommin/golib/http/middleware/compressor"
	"github.com/pudottapommin/golib/http/middleware/logger"
	"github.com/pudottapommin/golib/http/middleware/requestid"
	"github.com/pudottapommin/golib/http/middleware/static"
	"github.com/pudottapommin/golib/pkg/assetsfs"
)

type App struct {
	*server.Server
	store *storage.Store
	cfg   *config.Config
	l     *slog.Logger
}

func New(ctx context.Context, backend storage.Backend, cfg *config.Config, l *slog.Logger) *App {
	return &App{
		Server: server.New(ctx, flow.New()),
		store:  storage.NewStore(backend, l),
		cfg:    cfg,
		l:      l,
	}
}

func (a *App) Run(addr string) (err error) {
	a.E().Use(
		requestid.New().Handler,
		logger.New(logger.WithLogger(a.l, "[HTTP]"), logger.WithNext(func(w http.ResponseWriter, r *http.Request) bool {
			return strings.HasPrefix(r.URL.Path, "/static") || strings.HasPrefix(r.URL.Path, "/.well-known")
		})).Handler,
		compressor.MustNew(),
	)

	{
		h := api.NewHandlers(a.cfg, a.store, a.l)
		h.AddHandlers(a.E())
	}
	if a.cfg.UI {
		a.E().Group(func(r *flow.Mux) {
			ls := assetsfs.NewLayered(assets.BuiltinAssets())
			r.Handle("/static/...", http.StripPrefix("/static/",
				static.New(ls, static.WithEtag(), static.WithSetProd(a.cfg.IsProd))))
		})

		h := ui.NewHandlers(a.cfg, a.l)
		h.AddHandlers(a.E())
	}

	go storage.NewSweeper(a.store, a.cfg.SweepInterval, a.l).Run(a.Ctx())

	a.l.Debug("Server started", "address", addr)
	return a.Server.Run(addr)
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.Server.Shutdown(ctx)
}
