// Package mcode implements MCODE-style protein complex detection:
// coreness-weighted seed expansion over an immutable graph, followed by
// haircut/fluff post-processing. All stages are deterministic for a
// fixed graph and option set, including under parallel vertex weighting.
package mcode

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lazear/mcode/pkg/graph"
)

// FindComplexes runs the full detection pipeline: core decomposition,
// vertex weighting, seed expansion in descending weight order, then
// post-processing per the options. A nil opts means DefaultOptions.
//
// Complexes in the result are vertex-disjoint and sorted by descending
// score, ties by ascending seed id. An empty graph yields an empty
// complex list, not an error. Cancellation is observed once per seed;
// a cancelled run returns ctx.Err() and no partial result.
func FindComplexes(ctx context.Context, g *graph.Graph, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{
		RunID:     uuid.NewString(),
		Complexes: []*Complex{},
	}
	n := g.NumVertices()
	result.Stats.Vertices = n
	result.Stats.Edges = g.NumEdges()
	if n == 0 {
		result.Stats.Elapsed = time.Since(start)
		return result, nil
	}

	mark := time.Now()
	core := Coreness(g)
	result.Stats.CorenessTime = time.Since(mark)
	result.Stats.MaxCoreness = maxCoreness(core)

	mark = time.Now()
	weights := VertexWeights(g, core, opts.Workers)
	result.Stats.WeightTime = time.Since(mark)

	claims := newClaimSet(n)
	exp := newExpander(g, weights, claims)
	post := newPostProcessor(g, opts, claims)

	// Two-phase mode holds every raw candidate until expansion is done;
	// interleaved mode post-processes each candidate immediately so the
	// haircut can hand trimmed vertices back to later seeds.
	var candidateSeeds []int
	var candidates [][]int
	var postTime time.Duration
	mark = time.Now()
	for _, s := range seedOrder(weights) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if claims.claimed(s) {
			continue
		}
		members := exp.expand(s, opts.VertexWeightPercentage)
		result.Stats.SeedsExpanded++
		if len(members) < 2 {
			continue
		}
		result.Stats.CandidatesEmitted++
		if opts.PostMode == Interleaved {
			postMark := time.Now()
			if c := post.process(s, members); c != nil {
				result.Complexes = append(result.Complexes, c)
			}
			postTime += time.Since(postMark)
			continue
		}
		candidateSeeds = append(candidateSeeds, s)
		candidates = append(candidates, members)
	}
	result.Stats.ExpandTime = time.Since(mark) - postTime

	mark = time.Now()
	for i, members := range candidates {
		if c := post.process(candidateSeeds[i], members); c != nil {
			result.Complexes = append(result.Complexes, c)
		}
	}
	result.Stats.PostTime = postTime + time.Since(mark)

	sort.Slice(result.Complexes, func(i, j int) bool {
		a, b := result.Complexes[i], result.Complexes[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Seed < b.Seed
	})

	result.Stats.Elapsed = time.Since(start)
	return result, nil
}
