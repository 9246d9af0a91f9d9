package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/avitodash/statsproxy/internal/avito"
	"github.com/avitodash/statsproxy/internal/config"
	"github.com/avitodash/statsproxy/internal/httpx"
	"github.com/avitodash/statsproxy/internal/stats"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("bad config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	cl := avito.NewHTTPClient(cfg.HTTPTimeout)
	tokens := avito.NewTokenCache(cl, cfg.TokenURL(), cfg.ClientID, cfg.ClientSecret)
	api := avito.NewAPI(cl, cfg.ItemStatsURL(), cfg.CallStatsURL())
	svc := stats.NewService(tokens, api, logger)

	r := httpx.NewRouter(logger, svc, cfg.AllowOrigin)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
