package lock

//go:generate go run go.uber.org/mock/mockgen -source=./lock.go -destination=./mocks/lock_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"salon/infras/otel"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName = "lock"
	keyPrefix     = "lock:"
)

var ErrNotAcquired = errors.New("lock is held by another request")

// releaseScript deletes the key only when it still carries our token, so a
// holder whose lease expired cannot release somebody else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker serialises work on a key across API replicas.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

type redisLocker struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisLocker(client *redis.Client, ot otel.Otel) Locker {
	return &redisLocker{
		client: client,
		otel:   ot,
	}
}

// Acquire takes the lock or fails fast with ErrNotAcquired. The returned
// release func is safe to call once the caller is done.
func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error) {
	ctx, scope := l.otel.NewScope(ctx, otelScopeName, otelScopeName+".Acquire")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	lockKey := keyPrefix + key
	token := uuid.NewString()

	scope.SetAttribute("lock.key", lockKey)

	ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}

	if !ok {
		return nil, ErrNotAcquired
	}

	release = func() {
		c := context.WithoutCancel(ctx)

		if err := releaseScript.Run(c, l.client, []string{lockKey}, token).Err(); err != nil {
			log.Warn().Err(err).Str("key", lockKey).Msg("failed to release lock")
		}
	}

	return release, nil
}
