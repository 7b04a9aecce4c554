package mcode

import (
	"runtime"

	"github.com/lazear/mcode/pkg/graph"
	"github.com/lazear/mcode/pkg/parallel"
)

// VertexWeights computes the weight of every vertex: coreness(v) times
// the edge density of the highest-core neighborhood N_k(v), which is v
// together with its neighbors sharing v's core number. A neighborhood
// of fewer than two vertices has density 0.
//
// Vertices are scored independently on a worker pool (workers <= 0
// means one per CPU). Each worker keeps its own scratch marks, so the
// result is identical for any pool size.
func VertexWeights(g *graph.Graph, core []int, workers int) []float64 {
	n := g.NumVertices()
	weights := make([]float64, n)
	if n == 0 {
		return weights
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()

	chunk := (n + workers - 1) / workers
	pool.ForEachRange(n, chunk, func(start, end int) {
		scratch := newWeightScratch(n)
		for v := start; v < end; v++ {
			weights[v] = scratch.weigh(g, core, v)
		}
	})

	return weights
}

// VertexWeight computes the weight of a single vertex. Allocates its own
// scratch; use VertexWeights for whole-graph scoring.
func VertexWeight(g *graph.Graph, core []int, v int) float64 {
	return newWeightScratch(g.NumVertices()).weigh(g, core, v)
}

// weightScratch holds the reusable per-worker state for neighborhood
// density counting: an epoch-stamped membership mark per vertex.
type weightScratch struct {
	mark    []int32
	epoch   int32
	members []int
}

func newWeightScratch(n int) *weightScratch {
	return &weightScratch{
		mark:    make([]int32, n),
		members: make([]int, 0, 64),
	}
}

func (s *weightScratch) weigh(g *graph.Graph, core []int, v int) float64 {
	kv := core[v]

	members := s.members[:0]
	members = append(members, v)
	for _, u := range g.Neighbors(v) {
		if core[u] == kv {
			members = append(members, u)
		}
	}
	s.members = members

	count := len(members)
	if count < 2 {
		return 0
	}

	s.epoch++
	e := s.epoch
	for _, m := range members {
		s.mark[m] = e
	}

	// Each internal edge is seen from both endpoints.
	edges := 0
	for _, m := range members {
		for _, w := range g.Neighbors(m) {
			if s.mark[w] == e {
				edges++
			}
		}
	}
	edges /= 2

	density := float64(edges) / (float64(count) * float64(count-1) / 2)
	return float64(kv) * density
}
