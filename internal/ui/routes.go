package ui

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/flow"
	"github.com/pudottapommin/ephemeral-messages-service/config"
)

type handlers struct {
	l   *slog.Logger
	cfg *config.Config
}

func NewHandlers(cfg *config.Config, l *slog.Logger) *handlers {
	return &handlers{cfg: cfg, l: l}
}

// AddHandlers mounts the SPA shell on everything the API does not claim;
// client-side routing takes it from there.
func (h *handlers) AddHandlers(e *flow.Mux) {
	e.HandleFunc("/...", h.indexGET, "GET")
}

func (h *handlers) indexGET(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.ExecuteTemplate(w, "index.gohtml", nil); err != nil {
		h.l.Error("failed to render index", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
