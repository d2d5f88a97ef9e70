package pathfinding

import (
	"fmt"
	"strings"

	"isoflow/geometry"
)

// PathCache stores previously computed routes keyed by strategy and
// waypoint sequence. Eviction is arbitrary once maxSize is reached.
// Paths handed out share their Tiles slice with the cache and must not be
// modified.
type PathCache struct {
	cache     map[string]Path
	maxSize   int
	hits      int
	misses    int
	evictions int
}

// NewPathCache creates a new path cache with the specified maximum size.
func NewPathCache(maxSize int) *PathCache {
	return &PathCache{
		cache:   make(map[string]Path),
		maxSize: maxSize,
	}
}

func cacheKey(strategy RoutingStrategy, waypoints []geometry.Tile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", strategy)
	for _, w := range waypoints {
		fmt.Fprintf(&b, "|%d,%d", w.X, w.Y)
	}
	return b.String()
}

// Get retrieves a path from the cache if it exists.
func (pc *PathCache) Get(strategy RoutingStrategy, waypoints []geometry.Tile) (Path, bool) {
	path, found := pc.cache[cacheKey(strategy, waypoints)]
	if found {
		pc.hits++
	} else {
		pc.misses++
	}
	return path, found
}

// Put stores a path in the cache.
func (pc *PathCache) Put(strategy RoutingStrategy, waypoints []geometry.Tile, path Path) {
	if pc.maxSize > 0 && len(pc.cache) >= pc.maxSize {
		for k := range pc.cache {
			delete(pc.cache, k)
			pc.evictions++
			break
		}
	}
	pc.cache[cacheKey(strategy, waypoints)] = path
}

// Clear removes all entries and resets the counters.
func (pc *PathCache) Clear() {
	pc.cache = make(map[string]Path)
	pc.hits, pc.misses, pc.evictions = 0, 0, 0
}

// Stats returns cache statistics.
func (pc *PathCache) Stats() (hits, misses, evictions, size int) {
	return pc.hits, pc.misses, pc.evictions, len(pc.cache)
}

// String returns a string representation of cache statistics.
func (pc *PathCache) String() string {
	hits, misses, evictions, size := pc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return fmt.Sprintf("PathCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, pc.maxSize, hits, misses, hitRate, evictions)
}
