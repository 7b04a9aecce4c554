package mcode

import (
	"time"
)

// Complex is one detected protein complex: a set of member vertices with
// its density-based score.
type Complex struct {
	// Seed is the vertex the complex was grown from.
	Seed int
	// Members holds the vertex ids in ascending order. The seed is
	// always a member.
	Members []int
	// Density is the internal edge density of the member set.
	Density float64
	// Score is Density times the member count.
	Score float64
}

// Size returns the number of members.
func (c *Complex) Size() int {
	return len(c.Members)
}

// Contains reports whether v is a member. Binary search over the sorted
// member list.
func (c *Complex) Contains(v int) bool {
	lo, hi := 0, len(c.Members)
	for lo < hi {
		mid := (lo + hi) / 2
		if c.Members[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(c.Members) && c.Members[lo] == v
}

// Stats carries run-level counters and stage timings for logging and
// reporting.
type Stats struct {
	Vertices          int
	Edges             int
	MaxCoreness       int
	SeedsExpanded     int
	CandidatesEmitted int

	CorenessTime time.Duration
	WeightTime   time.Duration
	ExpandTime   time.Duration
	PostTime     time.Duration
	Elapsed      time.Duration
}

// Result is the outcome of a clustering run. Complexes are disjoint and
// ordered by descending score, ties broken by ascending seed id.
type Result struct {
	RunID     string
	Complexes []*Complex
	Stats     Stats
}
