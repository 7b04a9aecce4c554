package mcode

import (
	"math/bits"
	"sync/atomic"
)

// claimSet is a compact bit array recording which vertices already
// belong to a complex. Claiming is compare-and-swap so a vertex can be
// won exactly once even under concurrent claimers; the engine drives it
// sequentially to keep runs deterministic.
type claimSet struct {
	words []uint64
}

func newClaimSet(n int) *claimSet {
	return &claimSet{words: make([]uint64, (n+63)/64)}
}

// claimed reports whether v has been claimed.
func (c *claimSet) claimed(v int) bool {
	return atomic.LoadUint64(&c.words[v>>6])&(1<<(uint(v)&63)) != 0
}

// tryClaim claims v and returns true, or returns false if v was already
// claimed.
func (c *claimSet) tryClaim(v int) bool {
	word := v >> 6
	bit := uint64(1) << (uint(v) & 63)
	for {
		old := atomic.LoadUint64(&c.words[word])
		if old&bit != 0 {
			return false
		}
		if atomic.CompareAndSwapUint64(&c.words[word], old, old|bit) {
			return true
		}
	}
}

// release returns v to the unclaimed pool.
func (c *claimSet) release(v int) {
	word := v >> 6
	bit := uint64(1) << (uint(v) & 63)
	for {
		old := atomic.LoadUint64(&c.words[word])
		if old&bit == 0 {
			return
		}
		if atomic.CompareAndSwapUint64(&c.words[word], old, old&^bit) {
			return
		}
	}
}

// count returns the number of claimed vertices.
func (c *claimSet) count() int {
	total := 0
	for i := range c.words {
		total += bits.OnesCount64(atomic.LoadUint64(&c.words[i]))
	}
	return total
}
