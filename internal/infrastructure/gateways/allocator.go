package gateways

import (
	"context"
	"fmt"

	redislib "github.com/redis/go-redis/v9"
	domainerrors "nick-exchange.backend/internal/domain/errors"
	"nick-exchange.backend/pkg/utils"
)

const (
	reservationPrefix = "nickname:reserved:"
	// reservations never expire; a reserved nickname stays taken until the
	// backing asset is burned, which this system does not do
	maxSaltAttempts = 5
)

// RedisAllocator implements NicknameAllocator with SetNX reservations, so a
// nickname can be claimed by at most one caller across all processes. When
// the candidate is taken it retries with salted variants before giving up.
type RedisAllocator struct {
	client *redislib.Client
}

// NewRedisAllocator creates a new redis-backed allocator
func NewRedisAllocator(client *redislib.Client) *RedisAllocator {
	return &RedisAllocator{client: client}
}

// ReserveUnique reserves the candidate nickname, or a salted variant of it
// when the candidate is taken. Returns the nickname actually reserved.
func (a *RedisAllocator) ReserveUnique(ctx context.Context, candidate string) (string, error) {
	ok, err := a.reserve(ctx, candidate)
	if err != nil {
		return "", err
	}
	if ok {
		return candidate, nil
	}

	for i := 0; i < maxSaltAttempts; i++ {
		salted := utils.SaltNickname(candidate)
		ok, err := a.reserve(ctx, salted)
		if err != nil {
			return "", err
		}
		if ok {
			return salted, nil
		}
	}
	return "", fmt.Errorf("no free variant of %q after %d attempts: %w", candidate, maxSaltAttempts, domainerrors.ErrAlreadyExists)
}

// Free drops a reservation. Used to undo a reservation whose follow-up
// bookkeeping failed.
func (a *RedisAllocator) Free(ctx context.Context, nickname string) error {
	return a.client.Del(ctx, reservationPrefix+nickname).Err()
}

func (a *RedisAllocator) reserve(ctx context.Context, nickname string) (bool, error) {
	ok, err := a.client.SetNX(ctx, reservationPrefix+nickname, "1", 0).Result()
	if err != nil {
		return false, fmt.Errorf("reserve nickname %q: %v: %w", nickname, err, domainerrors.ErrExternalService)
	}
	return ok, nil
}
