// Package keylock provides an in-process keyed mutex for serializing
// per-wallet and per-listing operations on a single node. A redis-backed
// implementation of the same interface covers multi-node deployments.
package keylock

import (
	"context"
	"sort"
	"sync"
)

// KeyLock serializes callers per key. Keys are locked in sorted order so
// two callers locking overlapping key sets cannot deadlock.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates a KeyLock
func New() *KeyLock {
	return &KeyLock{locks: make(map[string]*entry)}
}

// Lock acquires every key and returns the release function. The context is
// checked before each acquisition; a cancelled context aborts with keys
// acquired so far released.
func (k *KeyLock) Lock(ctx context.Context, keys ...string) (func(), error) {
	ordered := append([]string(nil), keys...)
	sort.Strings(ordered)

	acquired := make([]string, 0, len(ordered))
	release := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			k.unlock(acquired[i])
		}
	}

	for _, key := range ordered {
		if err := ctx.Err(); err != nil {
			release()
			return nil, err
		}
		k.acquire(key).mu.Lock()
		acquired = append(acquired, key)
	}
	return release, nil
}

func (k *KeyLock) acquire(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	return e
}

func (k *KeyLock) unlock(key string) {
	k.mu.Lock()
	e := k.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()
	e.mu.Unlock()
}
