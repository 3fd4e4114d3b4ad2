package syntax

import "sync/atomic"

// Slot identifies one lazily computed property stored on nodes.
type Slot uint32

var slotCount atomic.Uint32

// NewSlot allocates a cache slot. Slots are meant to be allocated once, in
// package-level variables.
func NewSlot() Slot {
	return Slot(slotCount.Add(1) - 1)
}

type cacheEntry struct {
	gen   uint32
	set   bool
	value any
}

// Memo returns the value of slot s for n, calling compute when no value
// was stored since the last invalidation of n.
func Memo[T any](n *Node, s Slot, compute func(*Node) T) T {
	n.mu.Lock()
	gen := n.gen
	if int(s) < len(n.cache) {
		if e := n.cache[s]; e.set && e.gen == gen {
			n.mu.Unlock()
			return e.value.(T)
		}
	}
	n.mu.Unlock()

	v := compute(n)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.gen != gen {
		// invalidated while computing; do not store a stale value
		return v
	}
	if int(s) >= len(n.cache) {
		grown := make([]cacheEntry, int(s)+1)
		copy(grown, n.cache)
		n.cache = grown
	}
	n.cache[s] = cacheEntry{gen: gen, set: true, value: v}
	return v
}

// Cached reports whether slot s holds a current value for n.
func Cached(n *Node, s Slot) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return int(s) < len(n.cache) && n.cache[s].set && n.cache[s].gen == n.gen
}

// Invalidate drops the cached properties of n and its ancestors. Values are
// not recomputed until the next Memo call.
func (n *Node) Invalidate() {
	for p := n; p != nil; p = p.parent {
		p.mu.Lock()
		p.gen++
		p.mu.Unlock()
	}
}

// Generation returns the number of times n has been invalidated.
func (n *Node) Generation() uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.gen
}
