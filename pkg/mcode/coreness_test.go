package mcode

import (
	"testing"

	"github.com/lazear/mcode/pkg/graph"
)

func TestCoreness_Clique(t *testing.T) {
	for _, size := range []int{2, 3, 5, 8} {
		g := buildGraph(t, size, cliqueEdges(0, size))
		core := Coreness(g)
		for v, k := range core {
			if k != size-1 {
				t.Errorf("Clique of %d: expected coreness %d for vertex %d, got %d",
					size, size-1, v, k)
			}
		}
	}
}

func TestCoreness_Path(t *testing.T) {
	g := buildGraph(t, 5, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}})
	core := Coreness(g)
	for v, k := range core {
		if k != 1 {
			t.Errorf("Expected coreness 1 for path vertex %d, got %d", v, k)
		}
	}
}

func TestCoreness_IsolatedVertices(t *testing.T) {
	g := buildGraph(t, 4, nil)
	core := Coreness(g)
	for v, k := range core {
		if k != 0 {
			t.Errorf("Expected coreness 0 for isolated vertex %d, got %d", v, k)
		}
	}
}

func TestCoreness_EmptyGraph(t *testing.T) {
	g := buildGraph(t, 0, nil)
	core := Coreness(g)
	if len(core) != 0 {
		t.Errorf("Expected empty coreness slice, got %v", core)
	}
}

func TestCoreness_TriangleWithPendant(t *testing.T) {
	g := buildGraph(t, 4, [][2]int{{0, 1}, {0, 2}, {1, 2}, {0, 3}})
	core := Coreness(g)
	want := []int{2, 2, 2, 1}
	for v := range want {
		if core[v] != want[v] {
			t.Errorf("Vertex %d: expected coreness %d, got %d", v, want[v], core[v])
		}
	}
}

// The bridge edge must not lift either endpoint above the coreness of
// its own clique.
func TestCoreness_TwoCliquesBridge(t *testing.T) {
	g := twoCliquesBridge(t)
	core := Coreness(g)
	for v, k := range core {
		if k != 3 {
			t.Errorf("Vertex %d: expected coreness 3, got %d", v, k)
		}
	}
}

func TestCoreness_Star(t *testing.T) {
	// Center 0 with five leaves. High degree does not mean high coreness.
	edges := [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5}}
	g := buildGraph(t, 6, edges)
	core := Coreness(g)
	for v, k := range core {
		if k != 1 {
			t.Errorf("Vertex %d: expected coreness 1, got %d", v, k)
		}
	}
}

// Every vertex of core number k must keep degree >= k inside the
// subgraph induced by vertices of core number >= k.
func TestCoreness_KCoreInvariant(t *testing.T) {
	g := randomGraph(t, 120, 400, 19)
	core := Coreness(g)
	for v := 0; v < g.NumVertices(); v++ {
		k := core[v]
		if k == 0 {
			continue
		}
		deg := 0
		for _, u := range g.Neighbors(v) {
			if core[u] >= k {
				deg++
			}
		}
		if deg < k {
			t.Errorf("Vertex %d has coreness %d but only %d neighbors in the %d-core",
				v, k, deg, k)
		}
	}
}

func TestMaxCoreness(t *testing.T) {
	if got := maxCoreness(nil); got != 0 {
		t.Errorf("Expected 0 for empty slice, got %d", got)
	}
	if got := maxCoreness([]int{1, 3, 2, 3, 0}); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
}

func BenchmarkCoreness(b *testing.B) {
	g, err := graph.New(500, cliqueBenchEdges(500))
	if err != nil {
		b.Fatalf("Failed to build graph: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Coreness(g)
	}
}
