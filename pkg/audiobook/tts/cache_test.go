package tts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSynthesizer struct {
	calls int
	err   error
}

func (c *countingSynthesizer) Synthesize(_ context.Context, req Request) ([]byte, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []byte("wav:" + req.Text), nil
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache", "synth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCache_GetPut(t *testing.T) {
	cache := openTestCache(t)

	_, ok, err := cache.Get([]byte("missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put([]byte("k"), []byte("v")))
	v, ok, err := cache.Get([]byte("k"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestCacheKey(t *testing.T) {
	base := Request{Text: "a", Voice: "v", Rate: "+0%", Volume: "+0%"}
	assert.Equal(t, CacheKey(base), CacheKey(base))

	for _, changed := range []Request{
		{Text: "b", Voice: "v", Rate: "+0%", Volume: "+0%"},
		{Text: "a", Voice: "w", Rate: "+0%", Volume: "+0%"},
		{Text: "a", Voice: "v", Rate: "-5%", Volume: "+0%"},
		{Text: "a", Voice: "v", Rate: "+0%", Volume: "+5%"},
	} {
		assert.NotEqual(t, CacheKey(base), CacheKey(changed))
	}
}

func TestCachedSynthesizer(t *testing.T) {
	ctx := context.Background()
	req := Request{Text: "Hello.", Voice: "v", Rate: "+0%", Volume: "+0%"}

	t.Run("Should call the backend once per distinct request", func(t *testing.T) {
		next := &countingSynthesizer{}
		synth := NewCachedSynthesizer(next, openTestCache(t))

		first, err := synth.Synthesize(ctx, req)
		require.NoError(t, err)
		second, err := synth.Synthesize(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, next.calls)

		other := req
		other.Text = "Bye."
		_, err = synth.Synthesize(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, 2, next.calls)
	})

	t.Run("Should not cache failures", func(t *testing.T) {
		next := &countingSynthesizer{err: errors.New("engine down")}
		cache := openTestCache(t)
		synth := NewCachedSynthesizer(next, cache)

		_, err := synth.Synthesize(ctx, req)
		require.Error(t, err)

		_, ok, err := cache.Get(CacheKey(req))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should persist entries across reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "synth.db")
		cache, err := OpenCache(path)
		require.NoError(t, err)
		_, err = NewCachedSynthesizer(&countingSynthesizer{}, cache).Synthesize(ctx, req)
		require.NoError(t, err)
		require.NoError(t, cache.Close())

		reopened, err := OpenCache(path)
		require.NoError(t, err)
		defer reopened.Close()

		next := &countingSynthesizer{}
		wav, err := NewCachedSynthesizer(next, reopened).Synthesize(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []byte("wav:Hello."), wav)
		assert.Zero(t, next.calls)
	})
}
