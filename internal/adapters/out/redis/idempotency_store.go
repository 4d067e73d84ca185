// Package redis keeps idempotency records for retried HTTP requests.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const pendingMarker = "pending"

// StoredResponse is the response replayed for a repeated idempotency key.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// Reservation is the outcome of Reserve.
type Reservation struct {
	// Acquired is true when the caller owns the key and must Complete or Release it.
	Acquired bool
	// Replay is the stored response of a finished request with the same key.
	Replay *StoredResponse
}

// IdempotencyStore records request outcomes under caller-supplied keys. A key is first
// reserved with a pending marker (SET NX) and later overwritten with the response.
//
// Example:
//
//	store := redis.NewIdempotencyStore(client, 24*time.Hour)
//	res, err := store.Reserve(ctx, key)
//	switch {
//	case res.Replay != nil:
//	    // send res.Replay
//	case !res.Acquired:
//	    // the first request is still running
//	}
type IdempotencyStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewIdempotencyStore creates a store whose records expire after ttl.
func NewIdempotencyStore(rdb redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// Key namespaces a client key by the request it belongs to.
func (s *IdempotencyStore) Key(method, path, clientKey string) string {
	return "idem:http:" + method + ":" + path + ":" + clientKey
}

// Reserve claims key, or reports the stored outcome of an earlier request.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (Reservation, error) {
	ok, err := s.rdb.SetNX(ctx, key, pendingMarker, s.ttl).Result()
	if err != nil {
		return Reservation{}, err
	}
	if ok {
		return Reservation{Acquired: true}, nil
	}

	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; try once more
		ok, err = s.rdb.SetNX(ctx, key, pendingMarker, s.ttl).Result()
		if err != nil {
			return Reservation{}, err
		}
		return Reservation{Acquired: ok}, nil
	}
	if err != nil {
		return Reservation{}, err
	}
	if string(raw) == pendingMarker {
		return Reservation{}, nil
	}

	var stored StoredResponse
	if err = json.Unmarshal(raw, &stored); err != nil {
		return Reservation{}, err
	}
	return Reservation{Replay: &stored}, nil
}

// Complete stores the response of a reserved key.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, response StoredResponse) error {
	raw, err := json.Marshal(response)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, s.ttl).Err()
}

// Release drops a reservation so the request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
