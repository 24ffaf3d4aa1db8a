package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"hexfief/internal/hub"
	"hexfief/internal/save"
	"hexfief/internal/ws"
)

func SetupRoutes(h *hub.Hub, store save.Store, origins []string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)
	r.Get("/saves", ListSaves(store, log))
	r.Get("/ws", ws.Handler(h, store, origins, log))
	return r
}
