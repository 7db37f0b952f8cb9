package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/summercamp/campfund/internal/core/domain"
)

const (
	idempotencyTTL = 24 * time.Hour
	// pendingTTL bounds how long a crashed request can block its key.
	pendingTTL = 2 * time.Minute
)

var pendingMarker = []byte("\x00pending")

// IdempotencyStore remembers checkout results by idempotency key.
// Key format: idem:checkout:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// Reserve claims key with SETNX. A nil result with a nil error means the
// caller owns the key and must Complete or Release it.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) ([]byte, error) {
	k := s.key(key)
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, k, pendingMarker, pendingTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return nil, nil
		}

		val, err := s.client.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("idempotency lookup: %w", err)
		}
		if bytes.Equal(val, pendingMarker) {
			return nil, domain.ErrRequestInFlight
		}
		return val, nil
	}
	return nil, domain.ErrRequestInFlight
}

// Complete stores the final result for key (expires after 24h).
func (s *IdempotencyStore) Complete(ctx context.Context, key string, result []byte) error {
	if err := s.client.Set(ctx, s.key(key), result, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release drops the reservation so the request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:checkout:" + key
}
