package rank9

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// selectKey identifies one (bit, n) Select query.
type selectKey struct {
	bit bool
	n   int
}

// queryCache memoizes Select results. It mirrors
// metadb.CachedDatabase's double-checked RWMutex-around-LRU pattern:
// reads take the read lock, and only a miss takes the write lock to
// populate the cache.
type queryCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[selectKey, int]
}

func newQueryCache(size int) *queryCache {
	if size <= 0 {
		size = 1024
	}
	c, err := lru.New[selectKey, int](size)
	if err != nil {
		// Only returns an error for a non-positive size, which is
		// normalized above; unreachable in practice.
		panic(err)
	}
	return &queryCache{cache: c}
}

// get is safe to call on a nil *queryCache (the common case when
// WithQueryCache was never applied).
func (c *queryCache) get(bit bool, n int) (int, bool) {
	if c == nil {
		return 0, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Get(selectKey{bit, n})
}

func (c *queryCache) put(bit bool, n, pos int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(selectKey{bit, n}, pos)
}
