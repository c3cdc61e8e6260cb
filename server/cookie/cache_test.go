package cookie

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestDistinctKeysAllGrantedConcurrently(t *testing.T) {
	c := NewCache[string, int](time.Hour)

	keys := []string{"a", "b", "c", "d", "e"}
	var wg sync.WaitGroup
	refs := make([]Ref[int], len(keys))
	for i, k := range keys {
		wg.Add(1)
		go func(i int, k string) {
			defer wg.Done()
			refs[i] = c.Allocate(k)
		}(i, k)
	}
	wg.Wait()

	for i, r := range refs {
		assert.Assert(t, r.Ok(), "key %q should have been granted", keys[i])
		r.Release()
	}
}

func TestSameKeyOnlyOneHolderAtATime(t *testing.T) {
	c := NewCache[string, int](time.Hour)

	var granted, holders, overlaps int32
	var wg sync.WaitGroup
	const n = 32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := c.Allocate("shared")
			if r.Ok() {
				atomic.AddInt32(&granted, 1)
				if atomic.AddInt32(&holders, 1) > 1 {
					atomic.AddInt32(&overlaps, 1)
				}
				atomic.AddInt32(&holders, -1)
				r.Release()
			}
		}()
	}
	wg.Wait()
	assert.Assert(t, granted >= 1)
	assert.Equal(t, overlaps, int32(0))
}

func TestContendedAllocateReturnsVacantNotError(t *testing.T) {
	c := NewCache[string, int](time.Hour)

	first := c.Allocate("k")
	assert.Assert(t, first.Ok())

	second := c.Allocate("k")
	assert.Assert(t, !second.Ok())

	first.Release()
}

func TestStaleSlotEvictedOnSlowPathMiss(t *testing.T) {
	c := NewCache[string, int](20 * time.Millisecond)

	r := c.Allocate("stale")
	assert.Assert(t, r.Ok())
	r.Release()
	assert.Equal(t, c.Len(), 1)

	time.Sleep(60 * time.Millisecond)

	other := c.Allocate("fresh")
	assert.Assert(t, other.Ok())
	other.Release()

	assert.Equal(t, c.Len(), 1)
	_, stillHasStale := c.cookies["stale"]
	assert.Assert(t, !stillHasStale)
}

func TestCurrentKeyNeverEvictedByItsOwnCall(t *testing.T) {
	c := NewCache[string, int](10 * time.Millisecond)

	r := c.Allocate("self")
	r.Release()
	time.Sleep(30 * time.Millisecond)

	// allocating the same key again must never evict itself even though
	// it is well past the inactivity threshold.
	r2 := c.Allocate("self")
	assert.Assert(t, r2.Ok())
	r2.Release()
	assert.Equal(t, c.Len(), 1)
}

func TestReleaseTouchesTimestamp(t *testing.T) {
	c := NewCache[string, int](time.Hour)
	r := c.Allocate("k")
	*r.Get() = 42
	before := c.cookies["k"].touched.Load()
	time.Sleep(2 * time.Millisecond)
	r.Release()
	after := c.cookies["k"].touched.Load()
	assert.Assert(t, after > before)
}
