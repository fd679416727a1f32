package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Storage.Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// Storage is the persisted key-value medium (the browser's local storage in
// the original front-end). SetMany must apply all entries or none.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	SetMany(ctx context.Context, entries map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// SetJSON stores v as a JSON string under key.
func SetJSON(ctx context.Context, s Storage, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(b), ttl)
}

// GetJSON loads key into dest. It reports false when the key is absent.
func GetJSON[T any](ctx context.Context, s Storage, key string, dest *T) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}
