// Package graph provides an immutable undirected simple graph over dense
// integer vertex ids, stored in compressed sparse row form. Construction
// validates the input once; afterwards all reads are lock-free and safe
// for concurrent use.
package graph

import "math"

// maxVertices bounds ids so edge keys pack into a uint64.
const maxVertices = math.MaxInt32

// Graph is an undirected simple graph with vertices 0..n-1.
// The zero value is not usable; construct with New.
type Graph struct {
	offsets []int // len n+1; neighbors of v live in targets[offsets[v]:offsets[v+1]]
	targets []int // len 2m, each undirected edge stored in both directions
}

// New builds a graph with numVertices vertices from a sequence of
// undirected (u, v) edges. Endpoints must lie in [0, numVertices),
// self-loops and duplicate edges (in either orientation) are rejected,
// and the offending edge is identified in the returned EdgeError.
// Neighbor order follows edge input order, so identical input yields an
// identical adjacency layout.
func New(numVertices int, edges [][2]int) (*Graph, error) {
	if numVertices < 0 || numVertices > maxVertices {
		return nil, ErrInvalidVertexCount
	}

	degrees := make([]int, numVertices)
	seen := make(map[uint64]struct{}, len(edges))
	for i, e := range edges {
		u, v := e[0], e[1]
		if u < 0 || u >= numVertices {
			return nil, &EdgeError{Index: i, U: u, V: v, Cause: ErrVertexOutOfRange}
		}
		if v < 0 || v >= numVertices {
			return nil, &EdgeError{Index: i, U: u, V: v, Cause: ErrVertexOutOfRange}
		}
		if u == v {
			return nil, &EdgeError{Index: i, U: u, V: v, Cause: ErrSelfLoop}
		}
		key := packEdge(u, v)
		if _, dup := seen[key]; dup {
			return nil, &EdgeError{Index: i, U: u, V: v, Cause: ErrDuplicateEdge}
		}
		seen[key] = struct{}{}
		degrees[u]++
		degrees[v]++
	}

	offsets := make([]int, numVertices+1)
	for v := 0; v < numVertices; v++ {
		offsets[v+1] = offsets[v] + degrees[v]
	}

	targets := make([]int, 2*len(edges))
	cursor := make([]int, numVertices)
	copy(cursor, offsets[:numVertices])
	for _, e := range edges {
		u, v := e[0], e[1]
		targets[cursor[u]] = v
		cursor[u]++
		targets[cursor[v]] = u
		cursor[v]++
	}

	return &Graph{offsets: offsets, targets: targets}, nil
}

// packEdge maps an undirected edge to a canonical uint64 key.
func packEdge(u, v int) uint64 {
	if u > v {
		u, v = v, u
	}
	return uint64(u)<<32 | uint64(uint32(v))
}

// NumVertices returns the vertex count.
func (g *Graph) NumVertices() int {
	return len(g.offsets) - 1
}

// NumEdges returns the undirected edge count.
func (g *Graph) NumEdges() int {
	return len(g.targets) / 2
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int {
	return g.offsets[v+1] - g.offsets[v]
}

// Neighbors returns the neighbor ids of v. The returned slice shares the
// graph's backing array and must not be modified.
func (g *Graph) Neighbors(v int) []int {
	return g.targets[g.offsets[v]:g.offsets[v+1]]
}

// HasEdge reports whether an undirected edge between u and v exists.
// Linear in the smaller of the two degrees.
func (g *Graph) HasEdge(u, v int) bool {
	if g.Degree(v) < g.Degree(u) {
		u, v = v, u
	}
	for _, w := range g.Neighbors(u) {
		if w == v {
			return true
		}
	}
	return false
}
