package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jemis-lakhani/coingame-backend/internal/config"
	"github.com/jemis-lakhani/coingame-backend/internal/hub"
	"github.com/jemis-lakhani/coingame-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, cfg *config.Config, log *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Post("/rooms", CreateRoom(h, log))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, cfg, log))
	return r
}
