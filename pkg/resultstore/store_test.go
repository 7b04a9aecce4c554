package resultstore

import (
	"context"
	"os"
	"testing"

	"github.com/lazear/mcode/pkg/report"
)

// Tests run against a real database and skip when MCODE_TEST_DATABASE_URL
// is unset.
func testStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("MCODE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("MCODE_TEST_DATABASE_URL not set")
	}
	store, err := NewStore(context.Background(), dsn)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReport(runID string) *report.Report {
	return &report.Report{
		RunID: runID,
		Stats: report.RunStats{
			Vertices:          8,
			Edges:             13,
			MaxCoreness:       3,
			SeedsExpanded:     3,
			CandidatesEmitted: 3,
			ElapsedSeconds:    0.02,
		},
		Complexes: []report.Complex{
			{ID: 1, Seed: "P10275", Score: 3.0, Density: 1.0, Size: 3, Members: []string{"P10275", "Q00987", "P04637"}},
			{ID: 2, Seed: "O15350", Score: 2.0, Density: 1.0, Size: 2, Members: []string{"O15350", "P38398"}},
		},
	}
}

func TestStore_SaveAndGetRun(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	rep := sampleReport("test-run-save-get")
	if err := store.SaveRun(ctx, rep); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	run, err := store.GetRun(ctx, rep.RunID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.Vertices != 8 || run.Edges != 13 {
		t.Errorf("Expected 8 vertices and 13 edges, got %d and %d", run.Vertices, run.Edges)
	}
	if run.Complexes != 2 {
		t.Errorf("Expected 2 complexes, got %d", run.Complexes)
	}
}

func TestStore_GetRunMissing(t *testing.T) {
	store := testStore(t)

	if _, err := store.GetRun(context.Background(), "no-such-run"); err == nil {
		t.Error("Expected an error for an unknown run id")
	}
}

func TestStore_ListRuns(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.SaveRun(ctx, sampleReport("test-run-list")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) == 0 {
		t.Error("Expected at least one run")
	}
}

func TestStore_Ping(t *testing.T) {
	store := testStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
