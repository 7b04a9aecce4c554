package mcode

import (
	"github.com/lazear/mcode/pkg/graph"
)

// Coreness computes the core number of every vertex: the largest k such
// that the vertex belongs to a subgraph where every vertex has degree at
// least k. Runs the bucket-queue peeling in O(V+E): vertices are removed
// in ascending order of residual degree, and each removal decrements the
// residual degree of its not-yet-removed neighbors.
func Coreness(g *graph.Graph) []int {
	n := g.NumVertices()
	core := make([]int, n)
	maxDeg := 0
	for v := 0; v < n; v++ {
		core[v] = g.Degree(v)
		if core[v] > maxDeg {
			maxDeg = core[v]
		}
	}
	if n == 0 {
		return core
	}

	// Bucket sort vertices by degree. bin[d] is the start of the
	// degree-d block inside vert; pos tracks each vertex's slot.
	bin := make([]int, maxDeg+1)
	for v := 0; v < n; v++ {
		bin[core[v]]++
	}
	start := 0
	for d := 0; d <= maxDeg; d++ {
		count := bin[d]
		bin[d] = start
		start += count
	}
	vert := make([]int, n)
	pos := make([]int, n)
	for v := 0; v < n; v++ {
		pos[v] = bin[core[v]]
		vert[pos[v]] = v
		bin[core[v]]++
	}
	for d := maxDeg; d > 0; d-- {
		bin[d] = bin[d-1]
	}
	bin[0] = 0

	// Peel in ascending residual degree. A neighbor with a higher
	// residual degree moves down one bucket: swap it with the first
	// vertex of its block, then shift the block boundary right.
	for i := 0; i < n; i++ {
		v := vert[i]
		for _, u := range g.Neighbors(v) {
			if core[u] > core[v] {
				du, pu := core[u], pos[u]
				pw := bin[du]
				w := vert[pw]
				if u != w {
					pos[u], pos[w] = pw, pu
					vert[pu], vert[pw] = w, u
				}
				bin[du]++
				core[u]--
			}
		}
	}

	return core
}

// maxCoreness returns the largest core number, or 0 for an empty slice.
func maxCoreness(core []int) int {
	max := 0
	for _, k := range core {
		if k > max {
			max = k
		}
	}
	return max
}
