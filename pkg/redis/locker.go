package redis

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockTTL       = 10 * time.Second
	lockRetryWait = 20 * time.Millisecond
)

// unlockScript releases a lock only when still held by this owner
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Locker serializes operations across nodes with SET NX leases. Keys are
// acquired in sorted order so overlapping key sets cannot deadlock.
type Locker struct {
	client *redis.Client
}

// NewLocker creates a Locker on the given client
func NewLocker(client *redis.Client) *Locker {
	return &Locker{client: client}
}

// Lock acquires every key and returns the release function. Acquisition
// spins with a short wait until the context is done.
func (l *Locker) Lock(ctx context.Context, keys ...string) (func(), error) {
	ordered := append([]string(nil), keys...)
	sort.Strings(ordered)

	owner := uuid.NewString()
	acquired := make([]string, 0, len(ordered))
	release := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			unlockScript.Run(context.Background(), l.client, []string{acquired[i]}, owner)
		}
	}

	for _, key := range ordered {
		lockKey := "lock:" + key
		for {
			ok, err := l.client.SetNX(ctx, lockKey, owner, lockTTL).Result()
			if err != nil {
				release()
				return nil, err
			}
			if ok {
				acquired = append(acquired, lockKey)
				break
			}
			select {
			case <-ctx.Done():
				release()
				return nil, ctx.Err()
			case <-time.After(lockRetryWait):
			}
		}
	}
	return release, nil
}
