package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/organmatch/matching-service/internal/api/handler"
	"github.com/organmatch/matching-service/internal/core/ports"
	"github.com/organmatch/matching-service/internal/infrastructure/db/mongo"
	"github.com/organmatch/matching-service/internal/infrastructure/db/redis"
	"github.com/organmatch/matching-service/internal/infrastructure/db/sqlite"
	"github.com/organmatch/matching-service/internal/infrastructure/notify"
	"github.com/organmatch/matching-service/internal/infrastructure/session"
	"github.com/organmatch/matching-service/internal/pkg/config"
)

type userStore struct {
	repo   ports.UserRepository
	health map[string]handler.Pinger
	close  func()
}

func openStore(ctx context.Context, cfg *config.Config) (*userStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		return &userStore{
			repo: mongo.NewUserRepository(db),
			health: map[string]handler.Pinger{
				"mongodb": func(ctx context.Context) error { return mongo.Ping(ctx, db) },
			},
			close: func() { _ = db.Client().Disconnect(context.Background()) },
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.SQLite.Path})
		if err != nil {
			return nil, err
		}
		return &userStore{
			repo: sqlite.NewUserRepository(db),
			health: map[string]handler.Pinger{
				"sqlite": db.PingContext,
			},
			close: func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

type sessionBackend struct {
	store  ports.SessionStore
	health map[string]handler.Pinger
	close  func()
}

// openSessions picks Redis when REDIS_ADDR is set, signed cookies otherwise.
func openSessions(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sessionBackend, error) {
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis session store")
		return &sessionBackend{
			store: redis.NewSessionStore(client),
			health: map[string]handler.Pinger{
				"redis": func(ctx context.Context) error { return redis.Ping(ctx, client) },
			},
			close: func() { _ = client.Close() },
		}, nil
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		var err error
		if secret, err = session.RandomSecret(); err != nil {
			return nil, err
		}
		log.Warn().Msg("SESSION_SECRET not set, sessions will not survive a restart")
	}
	return &sessionBackend{
		store:  session.NewJWTStore(secret),
		health: map[string]handler.Pinger{},
		close:  func() {},
	}, nil
}

func newNotifier(cfg *config.Config, log zerolog.Logger) ports.Notifier {
	if !cfg.Twilio.Enabled() {
		log.Info().Msg("sms notifications disabled")
		return notify.Noop{}
	}
	return notify.NewSMS(notify.SMSConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		From:       cfg.Twilio.From,
		BaseURL:    cfg.Twilio.BaseURL,
	}, log.With().Str("component", "notify").Logger())
}
