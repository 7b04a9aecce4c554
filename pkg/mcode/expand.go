package mcode

import (
	"sort"

	"github.com/lazear/mcode/pkg/graph"
)

// seedOrder returns all vertex ids sorted by weight descending, ties
// broken by ascending id. This is the order seeds are considered in and
// the source of run-to-run determinism.
func seedOrder(weights []float64) []int {
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if weights[a] != weights[b] {
			return weights[a] > weights[b]
		}
		return a < b
	})
	return order
}

// expander grows candidate complexes outward from seed vertices. The
// scratch arrays are reused across seeds; an epoch stamp replaces
// clearing the visited marks between expansions.
type expander struct {
	g       *graph.Graph
	weights []float64
	claims  *claimSet
	visited []int
	epoch   int
	queue   []int
}

func newExpander(g *graph.Graph, weights []float64, claims *claimSet) *expander {
	return &expander{
		g:       g,
		weights: weights,
		claims:  claims,
		visited: make([]int, g.NumVertices()),
		queue:   make([]int, 0, 64),
	}
}

// expand grows the candidate seeded at s to its fixed point: the
// breadth-first closure of the rule that a boundary vertex joins when
// its weight is at least weight(s) * (1 - vwp) and no earlier complex
// has claimed it. Admitted vertices are claimed immediately, the seed
// included. Returns the members in ascending id order.
//
// The caller must ensure s is unclaimed. The weight threshold is fixed
// for the whole expansion, so a vertex rejected once can never qualify
// later and each vertex is visited at most once.
func (e *expander) expand(s int, vwp float64) []int {
	threshold := e.weights[s] * (1 - vwp)

	e.epoch++
	e.visited[s] = e.epoch
	e.claims.tryClaim(s)

	members := []int{s}
	queue := append(e.queue[:0], s)
	for head := 0; head < len(queue); head++ {
		v := queue[head]
		for _, u := range e.g.Neighbors(v) {
			if e.visited[u] == e.epoch {
				continue
			}
			e.visited[u] = e.epoch
			if e.weights[u] < threshold {
				continue
			}
			if !e.claims.tryClaim(u) {
				continue
			}
			members = append(members, u)
			queue = append(queue, u)
		}
	}
	e.queue = queue

	sort.Ints(members)
	return members
}
