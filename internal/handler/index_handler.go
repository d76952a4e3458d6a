package handler

import (
	"context"
	"net/http"
	"time"

	"emojifeedback/internal/logger"
	middleware "emojifeedback/internal/midlleware"
)

type IndexHandler struct {
	view *Renderer
	db   Pinger
}

// Pinger - то, что умеет *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

func NewIndexHandler(view *Renderer, db Pinger) *IndexHandler {
	return &IndexHandler{view: view, db: db}
}

// Index отправляет на стартовую страницу роли; остальные пути - 404
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.view.Error(w, r, http.StatusNotFound, "Page not found")
		return
	}
	http.Redirect(w, r, middleware.HomePath(middleware.CurrentUser(r.Context())), http.StatusSeeOther)
}

func (h *IndexHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("health check failed")
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("ok"))
}
