// Package e2e exercises the full clustering pipeline the way cmd/mcode
// wires it: raw interaction file in, ranked complex report out.
package e2e

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazear/mcode/pkg/components"
	"github.com/lazear/mcode/pkg/dataset"
	"github.com/lazear/mcode/pkg/mcode"
	"github.com/lazear/mcode/pkg/report"
	"github.com/lazear/mcode/pkg/snapshot"
)

// accessions for the two-cliques-plus-bridge network, in interning order.
var fixtureProteins = []string{
	"P10001", "P10002", "P10003", "P10004",
	"P20001", "P20002", "P20003", "P20004",
}

// bioplexFixture renders the canonical two-cliques network as a BioPlex
// TSV: two 4-cliques of proteins joined by one bridge interaction, all
// above the probability threshold. Row order makes the interner assign
// ids 0..7 with the bridge at (3,4).
func bioplexFixture() string {
	var b strings.Builder
	b.WriteString("GeneA\tGeneB\tUniprotA\tUniprotB\tSymbolA\tSymbolB\tpW\tpNI\tpInt\n")
	row := func(a, c string) {
		fmt.Fprintf(&b, "1\t2\t%s\t%s\tGA\tGB\t0.001\t0.009\t0.990\n", a, c)
	}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			row(fixtureProteins[i], fixtureProteins[j])
		}
	}
	for i := 4; i < 8; i++ {
		for j := i + 1; j < 8; j++ {
			row(fixtureProteins[i], fixtureProteins[j])
		}
	}
	row(fixtureProteins[3], fixtureProteins[4])
	return b.String()
}

// TestPipeline_BioPlexToReport walks the whole pipeline on the canonical
// fixture: parse, snapshot round trip, graph build, clustering, report
// rendering.
func TestPipeline_BioPlexToReport(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Log("Step 1: Parsing BioPlex input...")
	el, stats, err := dataset.ParseBioPlex(strings.NewReader(bioplexFixture()), nil)
	require.NoError(t, err, "Parse should accept the fixture")
	assert.Equal(t, 13, stats.Accepted, "6+6 clique edges plus the bridge")
	assert.Equal(t, 8, el.NumVertices())
	assert.Equal(t, fixtureProteins, el.Names, "interning order must follow first appearance")

	t.Log("Step 2: Snapshot round trip...")
	snapPath := filepath.Join(dir, "network.snap")
	written, err := snapshot.Write(snapPath, el)
	require.NoError(t, err)
	assert.Greater(t, written, int64(0))
	loaded, err := snapshot.Load(snapPath)
	require.NoError(t, err)
	require.Equal(t, el.Edges, loaded.Edges, "snapshot must preserve the edge list exactly")
	require.Equal(t, el.Names, loaded.Names)

	t.Log("Step 3: Building the graph store...")
	g, err := loaded.Build()
	require.NoError(t, err)
	assert.Equal(t, 8, g.NumVertices())
	assert.Equal(t, 13, g.NumEdges())

	comps := components.Find(g)
	assert.Equal(t, 1, comps.Count, "the bridge keeps the network connected")

	t.Log("Step 4: Clustering with default options...")
	res, err := mcode.FindComplexes(ctx, g, nil)
	require.NoError(t, err)
	require.Len(t, res.Complexes, 3)
	claimed := make(map[int]bool)
	for _, c := range res.Complexes {
		for _, v := range c.Members {
			assert.False(t, claimed[v], "vertex %d appears in two complexes", v)
			claimed[v] = true
		}
	}

	t.Log("Step 5: Clustering with fluff + interleaved post-processing...")
	opts := mcode.DefaultOptions()
	opts.Fluff = true
	opts.PostMode = mcode.Interleaved
	res, err = mcode.FindComplexes(ctx, g, opts)
	require.NoError(t, err)
	require.Len(t, res.Complexes, 2, "each clique should absorb its bridge endpoint")
	for _, c := range res.Complexes {
		assert.Equal(t, 4, c.Size())
		assert.InDelta(t, 1.0, c.Density, 1e-9)
		assert.InDelta(t, 4.0, c.Score, 1e-9)
	}

	t.Log("Step 6: Rendering the report...")
	rep := report.New(res, loaded.Names)
	rep.Stats.Components = comps.Count
	require.Len(t, rep.Complexes, 2)
	assert.ElementsMatch(t, []string{"P10001", "P10002", "P10003", "P10004"},
		rep.Complexes[0].Members)
	assert.ElementsMatch(t, []string{"P20001", "P20002", "P20003", "P20004"},
		rep.Complexes[1].Members)

	var csvBuf bytes.Buffer
	require.NoError(t, rep.WriteCSV(&csvBuf))
	assert.Contains(t, csvBuf.String(), "P10001;P10002;P10003;P10004")

	var jsonBuf bytes.Buffer
	require.NoError(t, rep.WriteJSON(&jsonBuf))
	back, err := report.ReadJSON(&jsonBuf)
	require.NoError(t, err)
	assert.Equal(t, rep.RunID, back.RunID)
	require.Len(t, back.Complexes, 2)
	assert.Equal(t, rep.Complexes[0].Members, back.Complexes[0].Members)
}

// TestPipeline_RemoteGzipDataset runs the fetch path: the dataset is
// served gzip-compressed over HTTP, cached locally, and clustered.
func TestPipeline_RemoteGzipDataset(t *testing.T) {
	var compressed bytes.Buffer
	gz := gzip.NewWriter(&compressed)
	_, err := gz.Write([]byte(bioplexFixture()))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(compressed.Bytes())
	}))
	defer server.Close()

	ctx := context.Background()
	fetcher := &dataset.Fetcher{CacheDir: t.TempDir()}
	url := server.URL + "/bioplex.tsv.gz"

	path, err := fetcher.Fetch(ctx, url)
	require.NoError(t, err)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	el, _, err := dataset.ParseBioPlex(f, nil)
	require.NoError(t, err, "fetched file should already be decompressed")
	assert.Equal(t, 8, el.NumVertices())

	g, err := el.Build()
	require.NoError(t, err)
	res, err := mcode.FindComplexes(ctx, g, nil)
	require.NoError(t, err)
	assert.Len(t, res.Complexes, 3)

	// Second fetch must come out of the cache.
	again, err := fetcher.Fetch(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, 1, hits, "cached dataset should not be re-downloaded")
}

// TestPipeline_DeterministicAcrossRuns re-runs the same configuration
// and requires byte-identical rendered output, run id aside.
func TestPipeline_DeterministicAcrossRuns(t *testing.T) {
	el, _, err := dataset.ParseBioPlex(strings.NewReader(bioplexFixture()), nil)
	require.NoError(t, err)
	g, err := el.Build()
	require.NoError(t, err)

	render := func() string {
		res, err := mcode.FindComplexes(context.Background(), g, nil)
		require.NoError(t, err)
		rep := report.New(res, el.Names)
		rep.RunID = ""
		var buf bytes.Buffer
		require.NoError(t, rep.WriteCSV(&buf))
		return buf.String()
	}

	first := render()
	for i := 0; i < 3; i++ {
		require.Equal(t, first, render(), "run %d diverged", i+2)
	}
}
