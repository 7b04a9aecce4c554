// Package components computes connected components of an undirected
// graph with a disjoint-set forest.
package components

import (
	"github.com/lazear/mcode/pkg/graph"
)

// DisjointSet is a union-find structure with path compression and
// union by rank.
type DisjointSet struct {
	parent []int
	rank   []uint8
	count  int
}

// NewDisjointSet creates n singleton sets.
func NewDisjointSet(n int) *DisjointSet {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &DisjointSet{
		parent: parent,
		rank:   make([]uint8, n),
		count:  n,
	}
}

// Find returns the representative of x's set, compressing the path
// behind it.
func (d *DisjointSet) Find(x int) int {
	root := x
	for d.parent[root] != root {
		root = d.parent[root]
	}
	for d.parent[x] != root {
		d.parent[x], x = root, d.parent[x]
	}
	return root
}

// Union merges the sets containing x and y. Returns false if they were
// already in the same set.
func (d *DisjointSet) Union(x, y int) bool {
	rx, ry := d.Find(x), d.Find(y)
	if rx == ry {
		return false
	}
	if d.rank[rx] < d.rank[ry] {
		rx, ry = ry, rx
	}
	d.parent[ry] = rx
	if d.rank[rx] == d.rank[ry] {
		d.rank[rx]++
	}
	d.count--
	return true
}

// SameSet reports whether x and y share a representative.
func (d *DisjointSet) SameSet(x, y int) bool {
	return d.Find(x) == d.Find(y)
}

// Count returns the number of disjoint sets.
func (d *DisjointSet) Count() int {
	return d.count
}

// Result describes the connected components of a graph.
type Result struct {
	Count  int
	Labels []int // vertex id -> component index, numbered by first appearance
	Sizes  []int // component index -> vertex count
}

// Find computes the connected components of g. Component indices are
// assigned in ascending order of each component's smallest vertex id,
// so the labelling is deterministic.
func Find(g *graph.Graph) *Result {
	n := g.NumVertices()
	ds := NewDisjointSet(n)
	for v := 0; v < n; v++ {
		for _, u := range g.Neighbors(v) {
			if u > v {
				ds.Union(v, u)
			}
		}
	}

	labels := make([]int, n)
	index := make(map[int]int, ds.Count())
	sizes := make([]int, 0, ds.Count())
	for v := 0; v < n; v++ {
		root := ds.Find(v)
		id, ok := index[root]
		if !ok {
			id = len(sizes)
			index[root] = id
			sizes = append(sizes, 0)
		}
		labels[v] = id
		sizes[id]++
	}

	return &Result{
		Count:  ds.Count(),
		Labels: labels,
		Sizes:  sizes,
	}
}
