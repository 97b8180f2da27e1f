package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(api *API, wsHandler http.HandlerFunc) http.Handler {
	r := chi.NewRouter()

	r.Post("/api/auth/sync", api.SyncAuth)
	r.Get("/api/user/{playerID}", api.Profile)
	r.Get("/api/history/{playerID}", api.History)
	r.Get("/api/leaderboard", api.Leaderboard)
	r.Post("/api/tips", api.Tips)
	r.Get("/healthz", Healthz)
	r.Get("/ws", wsHandler)
	return r
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
