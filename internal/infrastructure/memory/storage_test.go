package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/creatorlink/internal/domain/repository"
)

func TestStorage_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	require.NoError(t, s.Set(ctx, "a", "1", 0))
	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	require.NoError(t, s.Delete(ctx, "a", "missing"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestStorage_TTLExpires(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "otp", "x", time.Minute))
	now = now.Add(30 * time.Second)
	_, err := s.Get(ctx, "otp")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = s.Get(ctx, "otp")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
	assert.Empty(t, s.Keys("otp"))
}

func TestStorage_SetManyAndKeys(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	require.NoError(t, s.SetMany(ctx, map[string]string{"c:1:user": "u", "c:1:token": "t", "c:2:user": "v"}))

	assert.ElementsMatch(t, []string{"c:1:user", "c:1:token"}, s.Keys("c:1:"))
	assert.Equal(t, map[string]string{"c:1:user": "u", "c:1:token": "t", "c:2:user": "v"}, s.Dump())
}
