package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/puravnayak/TypeClash/internal/leaderboard"
	"github.com/puravnayak/TypeClash/internal/store"
	"github.com/puravnayak/TypeClash/internal/tips"
	"go.uber.org/zap"
)

type API struct {
	store  *store.Store
	board  *leaderboard.Board // nil when redis is not configured
	tips   *tips.Client       // nil when no API key is configured
	secret []byte
	log    *zap.Logger
}

func NewAPI(st *store.Store, board *leaderboard.Board, tc *tips.Client, secret []byte, log *zap.Logger) *API {
	return &API{store: st, board: board, tips: tc, secret: secret, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type syncRequest struct {
	Token    string `json:"token"`
	UserData struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar"`
	} `json:"userData"`
}

// SyncAuth verifies the identity token and upserts the user, returning the
// stored profile. The token subject is the player id used everywhere else.
func (api *API) SyncAuth(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	playerID, err := api.verifyToken(req.Token)
	if err != nil {
		api.log.Warn("auth sync rejected", zap.Error(err))
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	u, err := api.store.SyncUser(r.Context(), playerID, req.UserData.Name, req.UserData.Email, req.UserData.Avatar)
	if err != nil {
		api.log.Error("user sync failed", zap.String("player", playerID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, profileResponse(u))
}

func (api *API) verifyToken(raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return api.secret, nil
	})
	if err != nil {
		return "", err
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

func profileResponse(u *store.User) map[string]any {
	return map[string]any{
		"playerId":        u.PlayerID,
		"name":            u.Name,
		"email":           u.Email,
		"avatar":          u.Avatar,
		"rating":          u.Rating,
		"gamesPlayed":     u.GamesPlayed,
		"wins":            u.Wins,
		"losses":          u.Losses,
		"draws":           u.Draws,
		"averageWPM":      u.AverageWPM,
		"averageAccuracy": u.AverageAccuracy,
	}
}

func (api *API) Profile(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	u, err := api.store.Profile(r.Context(), playerID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		api.log.Error("profile lookup failed", zap.String("player", playerID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, profileResponse(u))
}

type historyEntry struct {
	Opponent     string  `json:"opponent"`
	UserWPM      float64 `json:"userWPM"`
	OpponentWPM  float64 `json:"opponentWPM"`
	RatingChange int     `json:"ratingChange"`
	Result       string  `json:"result"`
	Timestamp    string  `json:"timestamp"`
}

func (api *API) History(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	matches, err := api.store.History(r.Context(), playerID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		api.log.Error("history lookup failed", zap.String("player", playerID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	entries := make([]historyEntry, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, historyEntry{
			Opponent:     m.Opponent,
			UserWPM:      m.UserWPM,
			OpponentWPM:  m.OpponentWPM,
			RatingChange: m.RatingChange,
			Result:       m.Result,
			Timestamp:    m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"matchHistory": entries})
}

func (api *API) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if api.board == nil {
		writeError(w, http.StatusServiceUnavailable, "leaderboard not configured")
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &limit); err != nil || limit <= 0 || limit > 100 {
			limit = 10
		}
	}
	entries, err := api.board.Top(r.Context(), limit)
	if err != nil {
		api.log.Error("leaderboard fetch failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
}

type tipsRequest struct {
	WPM      *float64 `json:"wpm"`
	Accuracy *float64 `json:"accuracy"`
	Errors   *int     `json:"errors"`
}

func (api *API) Tips(w http.ResponseWriter, r *http.Request) {
	if api.tips == nil {
		writeError(w, http.StatusServiceUnavailable, "tips not configured")
		return
	}
	var req tipsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.WPM == nil || req.Accuracy == nil || req.Errors == nil {
		writeError(w, http.StatusBadRequest, "Missing performance stats")
		return
	}

	out, err := api.tips.Generate(r.Context(), *req.WPM, *req.Accuracy, *req.Errors)
	if err != nil {
		api.log.Error("tips generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate tips")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"tips": out})
}
