package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"talentplay/internal/config"
	"talentplay/internal/dashboard"
	"talentplay/internal/live"
	"talentplay/internal/logger"
)

// liveChannelURL derives the websocket endpoint from the API base URL.
func liveChannelURL(serverURL string) string {
	ws := strings.Replace(serverURL, "https://", "wss://", 1)
	ws = strings.Replace(ws, "http://", "ws://", 1)
	return ws + "/api/live"
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level})

	slog.Info("Starting dashboard client",
		"server", cfg.Dashboard.ServerURL,
		"poll_interval", cfg.Dashboard.PollInterval,
		"page_size", cfg.Dashboard.PageSize,
	)

	subscriber := live.NewSubscriber(
		liveChannelURL(cfg.Dashboard.ServerURL),
		cfg.Dashboard.ServerURL,
		cfg.Dashboard.ReconnectDelay,
	)
	go subscriber.Run()
	defer subscriber.Close()

	fetcher := dashboard.NewHTTPFetcher(cfg.Dashboard.ServerURL, cfg.Dashboard.Token, nil)
	board := dashboard.New(fetcher, subscriber.Events(), cfg.Dashboard.PollInterval, cfg.Dashboard.PageSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := board.Refresh(ctx); err != nil {
		slog.Warn("Initial fetch failed, retrying on next trigger", "error", err)
	}

	go board.Run(ctx)

	// Headless renderer: log the first page whenever the snapshot moves.
	go func() {
		var lastFetched time.Time
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snapshot := board.Snapshot()
				if !snapshot.FetchedAt().After(lastFetched) {
					continue
				}
				lastFetched = snapshot.FetchedAt()

				page := board.Page(1)
				slog.Info("Result list updated",
					"total", page.TotalRows,
					"pages", page.TotalPages,
				)
				for _, row := range page.Rows {
					slog.Info("Result",
						"code", row.Code,
						"name", row.Name,
						"status", row.Badge.Label,
						"completed", row.CompletionDate,
					)
				}
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Dashboard client stopped")
}
