// Package dataset parses protein interaction source files into the
// validated edge list the clustering engine consumes. The adapters own
// id interning, score thresholds, duplicate policy, and malformed-line
// rejection; the graph store still re-validates on construction.
package dataset

import (
	"github.com/lazear/mcode/pkg/graph"
)

// EdgeList is a finalized parse result: dense vertex ids, the
// deduplicated undirected edges, and the id-to-accession table used
// when rendering results.
type EdgeList struct {
	Names []string
	Edges [][2]int
}

// NumVertices returns the number of interned proteins.
func (e *EdgeList) NumVertices() int {
	return len(e.Names)
}

// NumEdges returns the number of distinct interactions.
func (e *EdgeList) NumEdges() int {
	return len(e.Edges)
}

// Build constructs the immutable graph store from the edge list.
func (e *EdgeList) Build() (*graph.Graph, error) {
	return graph.New(len(e.Names), e.Edges)
}

// ParseStats counts row outcomes for logging and metrics.
type ParseStats struct {
	RowsRead         int
	Accepted         int
	BelowThreshold   int
	Unmapped         int
	SelfInteractions int
	Duplicates       int
}

// ParseOptions tunes an adapter. A nil options pointer selects the
// format's own defaults.
type ParseOptions struct {
	// MinScore keeps interactions scoring at or above this value.
	// BioPlex and STRING default to 700 on their 0..1000 scale; the
	// cleaned CSV format defaults to 0 since it is pre-thresholded.
	MinScore int
}

// Interner maps accession strings to dense vertex ids in insertion
// order.
type Interner struct {
	ids   map[string]int
	names []string
}

// NewInterner returns an empty interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]int)}
}

// Intern returns the vertex id for name, assigning the next free id on
// first sight.
func (in *Interner) Intern(name string) int {
	if id, ok := in.ids[name]; ok {
		return id
	}
	id := len(in.names)
	in.ids[name] = id
	in.names = append(in.names, name)
	return id
}

// Lookup returns the id for name without interning it.
func (in *Interner) Lookup(name string) (int, bool) {
	id, ok := in.ids[name]
	return id, ok
}

// Len returns the number of interned names.
func (in *Interner) Len() int {
	return len(in.names)
}

// Names returns the id-ordered name table. The slice is shared; do not
// modify.
func (in *Interner) Names() []string {
	return in.names
}

// builder accumulates interactions with canonical-pair deduplication
// and self-interaction rejection.
type builder struct {
	interner *Interner
	seen     map[[2]int]bool
	edges    [][2]int
	stats    ParseStats
}

func newBuilder() *builder {
	return &builder{
		interner: NewInterner(),
		seen:     make(map[[2]int]bool),
	}
}

// add records one interaction between two accessions. Self-interactions
// (common after isoform stripping) and repeats of a pair in either
// orientation are dropped and counted.
func (b *builder) add(a, c string) {
	u := b.interner.Intern(a)
	v := b.interner.Intern(c)
	if u == v {
		b.stats.SelfInteractions++
		return
	}
	if u > v {
		u, v = v, u
	}
	key := [2]int{u, v}
	if b.seen[key] {
		b.stats.Duplicates++
		return
	}
	b.seen[key] = true
	b.edges = append(b.edges, key)
	b.stats.Accepted++
}

func (b *builder) finish() (*EdgeList, ParseStats) {
	return &EdgeList{Names: b.interner.Names(), Edges: b.edges}, b.stats
}
