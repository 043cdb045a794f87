package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vachetaureau/go-server/internal/config"
	"github.com/vachetaureau/go-server/internal/httpserver"
	"github.com/vachetaureau/go-server/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dir := openDirectory(cfg)
	defer func() { _ = dir.Close() }()

	// Idle-room sweep. Redis evicts via TTL on its own; the memory backend
	// (and the redis fallback cache) need the periodic pass.
	go func() {
		ticker := time.NewTicker(cfg.Storage.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			if err := dir.Cleanup(context.Background(), cfg.Storage.RoomMaxAge); err != nil {
				log.Warn().Err(err).Msg("room cleanup")
			}
		}
	}()

	srv := httpserver.New(cfg, dir)
	log.Info().Str("port", cfg.Server.Port).Str("backend", cfg.Storage.Backend).Msg("starting vachetaureau server")
	if err := srv.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openDirectory builds the configured store backend. A Redis backend that
// cannot be reached at startup degrades to the in-memory directory rather
// than refusing to boot.
func openDirectory(cfg *config.Config) store.Directory {
	switch cfg.Storage.Backend {
	case "redis":
		dir, err := store.NewRedis(context.Background(), cfg.Storage.RedisAddr,
			cfg.Storage.RedisPassword, cfg.Storage.RedisDB, cfg.Storage.TTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, falling back to in-memory storage")
			return store.NewMemory()
		}
		log.Info().Str("addr", cfg.Storage.RedisAddr).Msg("using redis storage")
		return dir
	default:
		log.Info().Msg("using in-memory storage")
		return store.NewMemory()
	}
}
