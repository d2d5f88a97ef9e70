package pathfinding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathCache_BasicOperations(t *testing.T) {
	cache := NewPathCache(10)
	a := tiles([2]int{0, 0}, [2]int{2, 0})
	path := Path{Tiles: tiles([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})}

	_, found := cache.Get(HorizontalFirst, a)
	assert.False(t, found)

	cache.Put(HorizontalFirst, a, path)
	got, found := cache.Get(HorizontalFirst, a)
	require.True(t, found)
	assert.Equal(t, path, got)

	_, found = cache.Get(VerticalFirst, a)
	assert.False(t, found, "strategy is part of the key")

	hits, misses, evictions, size := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
	assert.Equal(t, 0, evictions)
	assert.Equal(t, 1, size)
	assert.Contains(t, cache.String(), "hits=1")
}

func TestPathCache_Eviction(t *testing.T) {
	cache := NewPathCache(2)
	cache.Put(HorizontalFirst, tiles([2]int{0, 0}), Path{})
	cache.Put(HorizontalFirst, tiles([2]int{1, 0}), Path{})
	cache.Put(HorizontalFirst, tiles([2]int{2, 0}), Path{})

	_, _, evictions, size := cache.Stats()
	assert.Equal(t, 1, evictions)
	assert.Equal(t, 2, size)

	cache.Clear()
	_, _, evictions, size = cache.Stats()
	assert.Zero(t, evictions)
	assert.Zero(t, size)
}

func TestRouter_UsesCache(t *testing.T) {
	router := NewRouter(HorizontalFirst, 4)
	waypoints := tiles([2]int{0, 0}, [2]int{3, 3})
	_, err := router.Route(waypoints)
	require.NoError(t, err)
	_, err = router.Route(waypoints)
	require.NoError(t, err)

	hits, misses, _, _ := router.Cache().Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}
