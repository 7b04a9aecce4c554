package mcode

import (
	"sort"

	"github.com/lazear/mcode/pkg/graph"
)

// vertexMarks is an epoch-stamped membership set over vertex ids.
// reset() invalidates all marks in O(1).
type vertexMarks struct {
	mark  []int
	epoch int
}

func newVertexMarks(n int) *vertexMarks {
	return &vertexMarks{mark: make([]int, n)}
}

func (m *vertexMarks) reset() {
	m.epoch++
}

func (m *vertexMarks) set(v int) {
	m.mark[v] = m.epoch
}

func (m *vertexMarks) clear(v int) {
	m.mark[v] = 0
}

func (m *vertexMarks) has(v int) bool {
	return m.mark[v] == m.epoch
}

// postProcessor applies the haircut/fluff/filter passes to candidate
// complexes. Scratch state is sized once per run and reused across
// candidates.
type postProcessor struct {
	g      *graph.Graph
	opts   *Options
	claims *claimSet
	// members marks the current complex, seen marks fluff candidates
	// already evaluated.
	members *vertexMarks
	seen    *vertexMarks
	deg     []int
	queue   []int
	// releaseTrimmed returns haircut-removed vertices to the unclaimed
	// pool (interleaved mode only).
	releaseTrimmed bool
}

func newPostProcessor(g *graph.Graph, opts *Options, claims *claimSet) *postProcessor {
	n := g.NumVertices()
	return &postProcessor{
		g:              g,
		opts:           opts,
		claims:         claims,
		members:        newVertexMarks(n),
		seen:           newVertexMarks(n),
		deg:            make([]int, n),
		queue:          make([]int, 0, 64),
		releaseTrimmed: opts.PostMode == Interleaved,
	}
}

// process runs the configured passes over one candidate and returns the
// finished complex, or nil when the size or score filter discards it.
// The candidate slice is consumed; members must arrive sorted ascending.
func (p *postProcessor) process(seed int, candidate []int) *Complex {
	switch {
	case p.opts.Haircut && p.opts.Fluff:
		if p.opts.PostOrder == FluffThenHaircut {
			candidate = p.haircut(p.fluff(candidate))
		} else {
			candidate = p.fluff(p.haircut(candidate))
		}
	case p.opts.Haircut:
		candidate = p.haircut(candidate)
	case p.opts.Fluff:
		candidate = p.fluff(candidate)
	}

	if len(candidate) < p.opts.MinComplexSize {
		return nil
	}
	density := p.density(candidate)
	score := density * float64(len(candidate))
	if score < p.opts.MinScore {
		return nil
	}
	return &Complex{Seed: seed, Members: candidate, Density: density, Score: score}
}

// haircut iteratively removes pendants, vertices with exactly one
// neighbor inside the complex, until none remain or a removal would
// shrink the complex below two vertices. Initial pendants go in
// ascending id order; pendants exposed by a removal follow in discovery
// order. Returns the survivors ascending.
func (p *postProcessor) haircut(candidate []int) []int {
	if len(candidate) < 3 {
		return candidate
	}

	p.members.reset()
	for _, v := range candidate {
		p.members.set(v)
	}
	for _, v := range candidate {
		d := 0
		for _, u := range p.g.Neighbors(v) {
			if p.members.has(u) {
				d++
			}
		}
		p.deg[v] = d
	}

	queue := p.queue[:0]
	for _, v := range candidate {
		if p.deg[v] == 1 {
			queue = append(queue, v)
		}
	}
	size := len(candidate)
	for head := 0; head < len(queue) && size > 2; head++ {
		v := queue[head]
		if !p.members.has(v) || p.deg[v] != 1 {
			continue
		}
		p.members.clear(v)
		size--
		if p.releaseTrimmed {
			p.claims.release(v)
		}
		for _, u := range p.g.Neighbors(v) {
			if p.members.has(u) {
				p.deg[u]--
				if p.deg[u] == 1 {
					queue = append(queue, u)
				}
			}
		}
	}
	p.queue = queue

	kept := candidate[:0]
	for _, v := range candidate {
		if p.members.has(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

// fluff makes a single admission pass over a snapshot of the current
// members in ascending order: every unclaimed outside neighbor is
// evaluated once, against the complex as it stands at that moment, and
// admitted (and claimed) when the density of complex+neighbor stays at
// or above the configured threshold. Not iterated to a fixed point.
func (p *postProcessor) fluff(candidate []int) []int {
	p.members.reset()
	for _, v := range candidate {
		p.members.set(v)
	}
	edges := p.internalEdges(candidate)
	p.seen.reset()

	snapshot := candidate
	for _, v := range snapshot {
		for _, u := range p.g.Neighbors(v) {
			if p.members.has(u) || p.seen.has(u) {
				continue
			}
			p.seen.set(u)
			if p.claims.claimed(u) {
				continue
			}
			joining := 0
			for _, w := range p.g.Neighbors(u) {
				if p.members.has(w) {
					joining++
				}
			}
			n := len(candidate) + 1
			if float64(edges+joining)/float64(n*(n-1)/2) >= p.opts.FluffDensityThreshold {
				p.claims.tryClaim(u)
				p.members.set(u)
				candidate = append(candidate, u)
				edges += joining
			}
		}
	}

	if len(candidate) > len(snapshot) {
		sort.Ints(candidate)
	}
	return candidate
}

// density computes the internal edge density of the member set, 0 for
// fewer than two members.
func (p *postProcessor) density(candidate []int) float64 {
	n := len(candidate)
	if n < 2 {
		return 0
	}
	p.members.reset()
	for _, v := range candidate {
		p.members.set(v)
	}
	return float64(p.internalEdges(candidate)) / float64(n*(n-1)/2)
}

// internalEdges counts edges with both endpoints marked as members.
// Each such edge is seen from both sides.
func (p *postProcessor) internalEdges(candidate []int) int {
	total := 0
	for _, v := range candidate {
		for _, u := range p.g.Neighbors(v) {
			if p.members.has(u) {
				total++
			}
		}
	}
	return total / 2
}
