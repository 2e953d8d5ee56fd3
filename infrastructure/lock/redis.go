package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"propertyhub/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockLost means the lock expired or was taken over before release.
var ErrLockLost = errors.New("lock no longer held")

// only the token holder may delete the key
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes callers across processes with SET NX PX.
type RedisLocker struct {
	client    redis.UniversalClient
	prefix    string
	ttl       time.Duration
	waitLimit time.Duration
	retryStep time.Duration
}

func NewRedisLocker(client redis.UniversalClient, cfg config.CartLockConfig) *RedisLocker {
	l := &RedisLocker{
		client:    client,
		prefix:    cfg.KeyPrefix,
		ttl:       cfg.TTL,
		waitLimit: cfg.WaitLimit,
		retryStep: cfg.RetryStep,
	}
	if l.ttl <= 0 {
		l.ttl = 5 * time.Second
	}
	if l.retryStep <= 0 {
		l.retryStep = 25 * time.Millisecond
	}
	return l
}

// NewRedisClient builds a client from configuration and pings it.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		MinIdleConns: 1,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	if l.waitLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.waitLimit)
		defer cancel()
	}

	ticker := time.NewTicker(l.retryStep)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return func(ctx context.Context) error {
				n, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int()
				if err != nil {
					return fmt.Errorf("failed to release lock %s: %w", key, err)
				}
				if n == 0 {
					return fmt.Errorf("%w: %s", ErrLockLost, key)
				}
				return nil
			}, nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
