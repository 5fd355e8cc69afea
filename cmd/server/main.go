// @title        Organ Match API
// @version      1.0
// @description  Organ donor and recipient registration and exact-attribute matching.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/organmatch/matching-service/internal/api"
	"github.com/organmatch/matching-service/internal/core/service"
	"github.com/organmatch/matching-service/internal/pkg/config"
	"github.com/organmatch/matching-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "organ-match",
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found, relying on environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open user store")
	}
	defer store.close()

	sessions, err := openSessions(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up session store")
	}
	defer sessions.close()

	notifier := newNotifier(cfg, log)

	authService := service.NewAuthService(store.repo, logger.Component("auth"))
	matchService := service.NewMatchService(authService, store.repo, notifier, logger.Component("match"))

	health := store.health
	for name, p := range sessions.health {
		health[name] = p
	}

	e, err := api.NewRouter(api.Deps{
		Auth:         authService,
		Matches:      matchService,
		Sessions:     sessions.store,
		Health:       health,
		SecureCookie: !cfg.IsDevelopment(),
		Logger:       log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
