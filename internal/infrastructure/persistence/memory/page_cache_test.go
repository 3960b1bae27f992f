package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viccon/sturdyc"

	"github.com/xiebiao/libraryapi/internal/domain/libro"
)

func newTestCache(clock sturdyc.Clock) *PageCache {
	return NewPageCache(PageCacheOptions{
		Capacity:           100,
		NumShards:          2,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
		Clock:              clock,
	})
}

func samplePage() *libro.Page {
	return libro.NewPage([]*libro.Libro{
		{ID: 2, Titulo: "Pedro Páramo", Autor: "Juan Rulfo", Genero: "Ficción"},
	}, 1, 1, 10)
}

func TestPageCache_Miss(t *testing.T) {
	c := newTestCache(nil)

	page, ok, err := c.Get(context.Background(), "libros:list:1:10:all:all")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, page)
}

func TestPageCache_HitWithinTTL(t *testing.T) {
	ctx := context.Background()
	clock := sturdyc.NewTestClock(time.Now())
	c := newTestCache(clock)

	want := samplePage()
	require.NoError(t, c.Set(ctx, "k", want))

	clock.Add(4*time.Minute + 59*time.Second)

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestPageCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	clock := sturdyc.NewTestClock(time.Now())
	c := newTestCache(clock)

	require.NoError(t, c.Set(ctx, "k", samplePage()))

	clock.Add(5*time.Minute + time.Second)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "超过5分钟应视为未命中")
}

func TestPageCache_SetOverwritesAndRestartsTTL(t *testing.T) {
	ctx := context.Background()
	clock := sturdyc.NewTestClock(time.Now())
	c := newTestCache(clock)

	require.NoError(t, c.Set(ctx, "k", samplePage()))
	clock.Add(4 * time.Minute)

	replaced := libro.NewPage(nil, 0, 1, 10)
	require.NoError(t, c.Set(ctx, "k", replaced))
	clock.Add(4 * time.Minute)

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, replaced, got)
}

func TestPageCache_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(nil)

	require.NoError(t, c.Set(ctx, "a", samplePage()))

	_, ok, _ := c.Get(ctx, "b")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Size())
}

func TestPageCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = c.Set(ctx, key, samplePage())
			_, _, _ = c.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, c.Size())
}
