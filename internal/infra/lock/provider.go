// Package lock provides RunLock implementations that keep recalculation runs from overlapping.
package lock

import (
	"context"
	"log/slog"
	"time"

	"zenlit/config"
	"zenlit/internal/domain/lifecycle"
	"zenlit/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	defaultLockKey = "zenlit:anonymity:run"
	defaultLockTTL = 10 * time.Minute
)

// Params holds dependencies for RunLock, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewRunLock returns a no-op lock unless anonymity.serializeRuns is on. When it is, runs are
// serialised through Redis if redis.addr is set and inside this process otherwise.
func NewRunLock(params Params) (service.RunLock, error) {
	cfg := params.Config.Redis
	logger := params.Logger.With(slog.String("component", "run_lock"))

	if params.Config.Anonymity == nil || !params.Config.Anonymity.SerializeRuns {
		return NewNoopLock(), nil
	}

	if cfg == nil || cfg.Addr == "" {
		logger.Info("Redis not configured, recalculation runs are serialised per process only")

		return NewLocalLock(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	key := cfg.LockKey
	if key == "" {
		key = defaultLockKey
	}
	ttl := cfg.LockTTL
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	// The lock must outlive the longest allowed run.
	if runTimeout := runTimeoutOf(params.Config); runTimeout > 0 && ttl < runTimeout {
		ttl = runTimeout
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "redis ping failed")
			}
			logger.Info("Connected to Redis", slog.String("addr", cfg.Addr), slog.String("key", key))

			return nil
		},
		OnStop: func(context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return NewRedisLock(client, key, ttl), nil
}

func runTimeoutOf(cfg *config.Config) time.Duration {
	if cfg.Anonymity == nil {
		return 0
	}

	return cfg.Anonymity.RunTimeout
}

// Module provides the run lock FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRunLock),
)
