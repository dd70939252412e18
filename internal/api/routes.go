package api

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/flow"
	"github.com/pudottapommin/ephemeral-messages-service/config"
	"github.com/pudottapommin/ephemeral-messages-service/pkg/server"
	"github.com/pudottapommin/ephemeral-messages-service/pkg/storage"
)

type handlers struct {
	l   *slog.Logger
	cfg *config.Config
	db  *storage.Store
}

func NewHandlers(cfg *config.Config, db *storage.Store, l *slog.Logger) *handlers {
	return &handlers{cfg: cfg, l: l, db: db}
}

func (h *handlers) AddHandlers(e *flow.Mux) {
	e.Group(func(g *flow.Mux) {
		g.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !h.cfg.Auth.IsEnabled {
					next.ServeHTTP(w, r)
					return
				}
				if err := server.AuthValidateHeader(r, h.cfg.Auth.Username, h.cfg.Auth.Password); err != nil {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r)
			})
		})

		g.HandleFunc("/api/paste", h.messagePOST, "POST")
	})

	e.HandleFunc("/api/paste/:uid", h.messageGET, "GET")
	e.HandleFunc("/api/del/:uid", h.messageDELETE, "POST")
	e.HandleFunc("/api/health", h.healthGET, "GET")
}
