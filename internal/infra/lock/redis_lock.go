package lock

import (
	"context"
	"time"

	"zenlit/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token, so an expired lock
// that was taken over by another instance is left alone.
//
//nolint:gochecknoglobals
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLock struct {
	client redis.Scripter
	setter redisSetter
	key    string
	ttl    time.Duration
}

type redisSetter interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

// NewRedisLock creates a lock backed by SET NX PX on key.
func NewRedisLock(client *redis.Client, key string, ttl time.Duration) service.RunLock {
	return &redisLock{client: client, setter: client, key: key, ttl: ttl}
}

func (l *redisLock) Acquire(ctx context.Context) (func(context.Context) error, error) {
	token := uuid.NewString()

	acquired, err := l.setter.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to acquire redis lock")
	}
	if !acquired {
		return nil, service.ErrLockHeld
	}

	return func(ctx context.Context) error {
		deleted, err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Int()
		if err != nil {
			return errors.Wrap(err, "failed to release redis lock")
		}
		if deleted == 0 {
			return errors.Errorf("redis lock %s expired before release", l.key)
		}

		return nil
	}, nil
}
