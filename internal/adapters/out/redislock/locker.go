// Package redislock serializes writers of one component across processes with a
// Redis key per component. A lock expires on its own after its TTL so a crashed
// writer never blocks the component for good.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "tracker:component:%s:lock"
	DefaultTTL = 10 * time.Second
)

// ErrLockLost is returned on release when the key expired or changed owner.
var ErrLockLost = errors.New("component lock was lost before release")

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var _ ports.ComponentLocker = &Locker{}

type Locker struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewLocker(client redis.UniversalClient, ttl time.Duration) (*Locker, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Locker{client: client, ttl: ttl}, nil
}

// Lock takes the component's key with SET NX. It fails with
// ports.ErrComponentIsLocked while another token holds it.
func (l *Locker) Lock(ctx context.Context, id kernel.UUID) (ports.ReleaseFunc, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	key := lockKey(id)
	token := kernel.NewUUID().String()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ports.ErrComponentIsLocked
	}

	return func(ctx context.Context) error {
		deleted, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
		if err != nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		if deleted == 0 {
			return ErrLockLost
		}
		return nil
	}, nil
}

func lockKey(id kernel.UUID) string {
	return fmt.Sprintf(keyPrefix, id.String())
}
