package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	dErrors "ethicsaudit/pkg/domain-errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	auditLockKeyPrefix     = "ethicsaudit:lock:audit:"
	defaultRedisLockTTL    = 10 * time.Second
	defaultRedisLockRetry  = 25 * time.Millisecond
	redisLockReleaseBudget = 2 * time.Second
)

// releaseLockScript deletes the lock only if it is still held by the caller's
// token, so an expired and re-acquired lock is never released by its old owner.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker shared by every instance of the service. Locks are
// SET NX with an expiry; a crashed holder frees its audit after the TTL.
type RedisLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	retry  time.Duration
	logger *slog.Logger
}

type RedisLockerOption func(*RedisLocker)

func WithLockTTL(ttl time.Duration) RedisLockerOption {
	return func(l *RedisLocker) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

func WithLockRetryInterval(d time.Duration) RedisLockerOption {
	return func(l *RedisLocker) {
		if d > 0 {
			l.retry = d
		}
	}
}

func WithLockLogger(logger *slog.Logger) RedisLockerOption {
	return func(l *RedisLocker) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func NewRedisLocker(client redis.UniversalClient, opts ...RedisLockerOption) *RedisLocker {
	l := &RedisLocker{
		client: client,
		ttl:    defaultRedisLockTTL,
		retry:  defaultRedisLockRetry,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := auditLockKeyPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()
	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "lock aborted: context cancelled")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeUpstreamFetch, "failed to acquire audit lock")
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "lock aborted: context cancelled")
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), redisLockReleaseBudget)
			defer cancel()
			if err := releaseLockScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
				l.logger.Warn("failed to release audit lock", "key", redisKey, "error", err)
			}
		})
	}, nil
}
