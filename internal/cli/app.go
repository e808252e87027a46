package cli

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ayel/intranet/internal/api/handler"
	"github.com/ayel/intranet/internal/core/ports"
	"github.com/ayel/intranet/internal/infrastructure/config"
	"github.com/ayel/intranet/internal/infrastructure/db/memory"
	"github.com/ayel/intranet/internal/infrastructure/db/mongo"
	"github.com/ayel/intranet/internal/infrastructure/db/redis"
	"github.com/ayel/intranet/internal/infrastructure/seed"
	"github.com/ayel/intranet/pkg/logger"
)

// runtime is the set of connections shared by the commands.
type runtime struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   ports.Store
	redis   *goredis.Client // nil when REDIS_ADDR is unset
	pingers []handler.Pinger
	closers []func(context.Context) error
}

func (r *runtime) Close(ctx context.Context) {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			r.log.Warn().Err(err).Msg("close failed")
		}
	}
}

// bootstrap loads configuration, initialises logging and opens storage.
func bootstrap(ctx context.Context, opts *RootOptions) (*runtime, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	log := logger.Init(logger.Options{
		Level:   level,
		Pretty:  opts.Pretty || !cfg.IsProduction(),
		Service: "intranet",
	})

	rt := &runtime{cfg: cfg, log: log}

	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, client.Disconnect)
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			rt.Close(ctx)
			return nil, err
		}
		rt.store = mongo.NewStore(db)
		rt.pingers = append(rt.pingers, mongo.NewPinger(db))
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo storage")
	default:
		rt.store = memory.NewStore()
		log.Warn().Msg("using in-memory storage; data is lost on restart")
	}

	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			rt.Close(ctx)
			return nil, err
		}
		rt.redis = client
		rt.closers = append(rt.closers, func(context.Context) error { return client.Close() })
		rt.pingers = append(rt.pingers, redis.NewPinger(client))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set; idempotency keys and logout are disabled")
	}

	return rt, nil
}

// applySeed loads the fixture file at path into the runtime's store.
func (r *runtime) applySeed(ctx context.Context, path string) error {
	fixtures, err := seed.Load(path)
	if err != nil {
		return err
	}
	res, err := seed.NewSeeder(r.store, logger.Component("seed")).Apply(ctx, fixtures)
	if err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	r.log.Info().Str("file", path).Int("inserted", res.Inserted).Int("skipped", res.Skipped).Msg("seed applied")
	return nil
}
