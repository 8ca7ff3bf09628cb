package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/auth"
	"github.com/ingStudiosOfficial/supereddit/internal/config"
	"github.com/ingStudiosOfficial/supereddit/internal/database"
	"github.com/ingStudiosOfficial/supereddit/internal/handlers"
	"github.com/ingStudiosOfficial/supereddit/internal/middleware"
	"github.com/ingStudiosOfficial/supereddit/internal/reddit"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/lmittmann/tint"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}
	cancel()

	// Cookies are only marked Secure when the frontend is served over TLS.
	secureCookies := strings.HasPrefix(cfg.FrontendURL, "https://")
	sessions := auth.NewSessions(db, cfg.SessionSecret, secureCookies)
	discord := auth.NewDiscordProvider(cfg.Discord.ClientID, cfg.Discord.ClientSecret, cfg.Discord.CallbackURL)
	redditClient := reddit.NewClient(cfg.RedditUserAgent)
	metrics := utils.NewMetricsCollector()

	server := handlers.NewServer(db, sessions, discord, redditClient, metrics, logger, cfg.FrontendURL)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.Routes(middleware.DefaultCORSConfig(cfg.AllowedOrigins)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.Error("failed to disconnect from MongoDB", "error", err)
	}
}
