package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/creatorlink/internal/domain/repository"
)

type item struct {
	value     string
	expiresAt time.Time
}

// Storage is an in-process repository.Storage used by tests and single-node demos.
type Storage struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

func NewStorage() *Storage {
	return &Storage{items: map[string]item{}, now: time.Now}
}

func (s *Storage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[key]
	if !ok {
		return "", repository.ErrKeyNotFound
	}
	if !it.expiresAt.IsZero() && !s.now().Before(it.expiresAt) {
		delete(s.items, key)
		return "", repository.ErrKeyNotFound
	}
	return it.value, nil
}

func (s *Storage) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := item{value: value}
	if ttl > 0 {
		it.expiresAt = s.now().Add(ttl)
	}
	s.items[key] = it
	return nil
}

func (s *Storage) SetMany(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range entries {
		s.items[k] = item{value: v}
	}
	return nil
}

func (s *Storage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.items, k)
	}
	return nil
}

// Keys returns the live keys with the given prefix. Test helper.
func (s *Storage) Keys(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.items))
	for k := range s.items {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

// Dump copies the raw contents. Test helper.
func (s *Storage) Dump() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.items))
	for k, it := range s.items {
		out[k] = it.value
	}
	return out
}

var _ repository.Storage = (*Storage)(nil)
