package snapshot

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lazear/mcode/pkg/dataset"
)

func fixtureEdgeList() *dataset.EdgeList {
	return &dataset.EdgeList{
		Names: []string{"P10275", "Q00987", "P04637", "O15350"},
		Edges: [][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 3}},
	}
}

func writeFixture(t *testing.T) (string, *dataset.EdgeList) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.snap")
	el := fixtureEdgeList()
	if _, err := Write(path, el); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return path, el
}

func corruptByte(t *testing.T, path string, offset int) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading snapshot failed: %v", err)
	}
	data[offset] ^= 0xFF
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Rewriting snapshot failed: %v", err)
	}
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	path, want := writeFixture(t)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Names) != len(want.Names) {
		t.Fatalf("Expected %d names, got %d", len(want.Names), len(got.Names))
	}
	for i, name := range want.Names {
		if got.Names[i] != name {
			t.Errorf("Expected name %d to be %s, got %s", i, name, got.Names[i])
		}
	}
	if len(got.Edges) != len(want.Edges) {
		t.Fatalf("Expected %d edges, got %d", len(want.Edges), len(got.Edges))
	}
	for i, e := range want.Edges {
		if got.Edges[i] != e {
			t.Errorf("Expected edge %d to be %v, got %v", i, e, got.Edges[i])
		}
	}
}

func TestWrite_ReportsFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.snap")
	written, err := Write(path, fixtureEdgeList())
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if written != info.Size() {
		t.Errorf("Expected reported size %d to match file size %d", written, info.Size())
	}
}

func TestWriteLoad_EmptyEdgeList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.snap")
	if _, err := Write(path, &dataset.EdgeList{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.NumVertices() != 0 || got.NumEdges() != 0 {
		t.Errorf("Expected an empty edge list, got %d vertices %d edges", got.NumVertices(), got.NumEdges())
	}
}

func TestWrite_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "snapshots", "graph.snap")
	if _, err := Write(path, fixtureEdgeList()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected the snapshot at %s: %v", path, err)
	}
}

func TestWrite_OverwritesExisting(t *testing.T) {
	path, _ := writeFixture(t)

	smaller := &dataset.EdgeList{Names: []string{"P10275", "Q00987"}, Edges: [][2]int{{0, 1}}}
	if _, err := Write(path, smaller); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.NumVertices() != 2 || got.NumEdges() != 1 {
		t.Errorf("Expected the second snapshot, got %d vertices %d edges", got.NumVertices(), got.NumEdges())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.snap")); err == nil {
		t.Error("Expected an error for a missing snapshot")
	}
}

func TestLoad_BadMagic(t *testing.T) {
	path, _ := writeFixture(t)
	corruptByte(t, path, 0)

	_, err := Load(path)
	if !IsCorrupt(err) {
		t.Fatalf("Expected a corrupt snapshot error, got %v", err)
	}
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	path, _ := writeFixture(t)
	corruptByte(t, path, 4)

	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("Expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestLoad_TruncatedPayload(t *testing.T) {
	path, _ := writeFixture(t)
	if err := os.Truncate(path, int64(headerSize)+1); err != nil {
		t.Fatalf("Truncate failed: %v", err)
	}

	_, err := Load(path)
	if !IsCorrupt(err) {
		t.Fatalf("Expected a corrupt snapshot error, got %v", err)
	}
}

// overwriteHeaderField replaces one uint64 header field in place. The
// checksum covers only the payload, so the file stays checksum-valid.
func overwriteHeaderField(t *testing.T, path string, offset int, value uint64) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading snapshot failed: %v", err)
	}
	binary.LittleEndian.PutUint64(data[offset:], value)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Rewriting snapshot failed: %v", err)
	}
}

// Header field offsets: magic(0) version(4) vertex_count(8)
// edge_count(16) payload_size(24) raw_size(32) crc32(40).
func TestLoad_LyingPayloadSize(t *testing.T) {
	path, _ := writeFixture(t)
	overwriteHeaderField(t, path, 24, 1<<62)

	_, err := Load(path)
	if !IsCorrupt(err) {
		t.Fatalf("Expected a corrupt snapshot error, got %v", err)
	}
}

func TestLoad_LyingVertexCount(t *testing.T) {
	path, _ := writeFixture(t)
	overwriteHeaderField(t, path, 8, 1<<61)

	_, err := Load(path)
	if !IsCorrupt(err) {
		t.Fatalf("Expected a corrupt snapshot error, got %v", err)
	}
}

func TestLoad_LyingEdgeCount(t *testing.T) {
	path, _ := writeFixture(t)
	overwriteHeaderField(t, path, 16, 1<<61)

	_, err := Load(path)
	if !IsCorrupt(err) {
		t.Fatalf("Expected a corrupt snapshot error, got %v", err)
	}
}

func TestLoad_LyingRawSize(t *testing.T) {
	path, _ := writeFixture(t)
	overwriteHeaderField(t, path, 32, 1<<62)

	_, err := Load(path)
	if !IsCorrupt(err) {
		t.Fatalf("Expected a corrupt snapshot error, got %v", err)
	}
}

func TestLoad_ChecksumMismatch(t *testing.T) {
	path, _ := writeFixture(t)
	corruptByte(t, path, headerSize+2)

	_, err := Load(path)
	if !IsCorrupt(err) {
		t.Fatalf("Expected a corrupt snapshot error, got %v", err)
	}
}

func TestLoad_BuildsGraph(t *testing.T) {
	path, _ := writeFixture(t)

	el, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	g, err := el.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.NumVertices() != 4 || g.NumEdges() != 4 {
		t.Errorf("Expected 4 vertices and 4 edges, got %d and %d", g.NumVertices(), g.NumEdges())
	}
}
