package main

import (
	"context"
	"net/http"

	"github.com/puravnayak/TypeClash/internal/arena"
	"github.com/puravnayak/TypeClash/internal/config"
	"github.com/puravnayak/TypeClash/internal/httpapi"
	"github.com/puravnayak/TypeClash/internal/leaderboard"
	"github.com/puravnayak/TypeClash/internal/store"
	"github.com/puravnayak/TypeClash/internal/text"
	"github.com/puravnayak/TypeClash/internal/tips"
	"github.com/puravnayak/TypeClash/internal/ws"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	st, err := store.Open(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}

	// Leaderboard is optional; run without it if redis is absent.
	var board *leaderboard.Board
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, leaderboard disabled", zap.Error(err))
		} else {
			board = leaderboard.New(rdb, logger)
			st.AttachLeaderboard(board)
		}
	}

	var tc *tips.Client
	if cfg.TogetherAPIKey != "" {
		tc = tips.New(cfg.TogetherAPIKey)
	}

	a := arena.New(ctx, st, text.Generator{}, nil, logger, arena.Config{
		SweepInterval: cfg.SweepInterval,
		WaitThreshold: cfg.WaitThreshold,
	})

	api := httpapi.NewAPI(st, board, tc, []byte(cfg.JWTSecret), logger)
	handler := httpapi.SetupRoutes(api, ws.Handler(a, st, logger))

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
