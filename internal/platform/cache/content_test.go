package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContent(t *testing.T) (*Content, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewContent(client, time.Minute), srv
}

func TestFetchFillsOnMiss(t *testing.T) {
	content, srv := newTestContent(t)
	builds := 0

	build := func(ctx context.Context) (any, error) {
		builds++
		return []string{"a", "b"}, nil
	}

	data, err := content.Fetch(context.Background(), "k", build)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))
	assert.True(t, srv.Exists("k"))

	_, err = content.Fetch(context.Background(), "k", build)
	require.NoError(t, err)
	assert.Equal(t, 1, builds)
}

func TestFetchBuildError(t *testing.T) {
	content, srv := newTestContent(t)
	boom := errors.New("boom")

	_, err := content.Fetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, srv.Exists("k"))
}

func TestInvalidate(t *testing.T) {
	content, srv := newTestContent(t)

	_, err := content.Fetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		return "v", nil
	})
	require.NoError(t, err)
	require.True(t, srv.Exists("k"))

	content.Invalidate(context.Background(), "k")
	assert.False(t, srv.Exists("k"))
}

func TestNilClientFallsThrough(t *testing.T) {
	content := NewContent(nil, time.Minute)
	builds := 0

	for i := 0; i < 2; i++ {
		data, err := content.Fetch(context.Background(), "k", func(ctx context.Context) (any, error) {
			builds++
			return 1, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "1", string(data))
	}
	assert.Equal(t, 2, builds)
}
