package cli

import (
	"context"
	"fmt"

	"github.com/pmlite/pmlite/internal/clock"
	"github.com/pmlite/pmlite/internal/config"
	"github.com/pmlite/pmlite/internal/logging"
	"github.com/pmlite/pmlite/internal/storage"
	"github.com/pmlite/pmlite/internal/store"
)

// openStore loads configuration, builds the configured storage backend,
// and returns the record store plus a cleanup function.
func openStore(ctx context.Context) (*store.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return openStoreWithConfig(ctx, cfg)
}

// openStoreWithConfig builds the record store for a resolved config.
func openStoreWithConfig(ctx context.Context, cfg *config.Config) (*store.Store, func(), error) {
	logger := GetLogger()

	var kv storage.KV
	closer := func() {}

	switch cfg.Storage.Backend {
	case config.BackendFile:
		dir, err := cfg.DataDir()
		if err != nil {
			return nil, nil, err
		}
		fileKV, err := storage.NewFileKV(dir)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug().Str("backend", "file").Str("dir", dir).Msg("storage ready")
		kv = fileKV

	case config.BackendRedis:
		redisKV, err := storage.NewRedisKV(ctx, cfg.Storage.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug().
			Str("backend", "redis").
			Str("redis_url", logging.SafeValue("redis_url", cfg.Storage.RedisURL)).
			Msg("storage ready")
		kv = redisKV
		closer = func() { _ = redisKV.Close() }

	case config.BackendMemory:
		logger.Debug().Str("backend", "memory").Msg("storage ready")
		kv = storage.NewMemoryKV()

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	s := store.New(kv, clock.RealClock{}, store.WithSeed(cfg.Storage.Seed))
	return s, closer, nil
}
