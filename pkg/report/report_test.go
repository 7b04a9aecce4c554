package report

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/lazear/mcode/pkg/components"
	"github.com/lazear/mcode/pkg/mcode"
)

var sampleNames = []string{"P10275", "Q00987", "P04637", "O15350", "P38398"}

func sampleResult() *mcode.Result {
	return &mcode.Result{
		RunID: "run-1234",
		Complexes: []*mcode.Complex{
			{Seed: 0, Members: []int{0, 1, 2}, Density: 1.0, Score: 3.0},
			{Seed: 3, Members: []int{3, 4}, Density: 1.0, Score: 2.0},
		},
		Stats: mcode.Stats{
			Vertices:          5,
			Edges:             4,
			MaxCoreness:       2,
			SeedsExpanded:     2,
			CandidatesEmitted: 2,
			Elapsed:           1500 * time.Millisecond,
		},
	}
}

func TestNew_ResolvesAccessions(t *testing.T) {
	rep := New(sampleResult(), sampleNames)

	if rep.RunID != "run-1234" {
		t.Errorf("Expected run id run-1234, got %s", rep.RunID)
	}
	if len(rep.Complexes) != 2 {
		t.Fatalf("Expected 2 complexes, got %d", len(rep.Complexes))
	}
	first := rep.Complexes[0]
	if first.ID != 1 || first.Seed != "P10275" || first.Size != 3 {
		t.Errorf("Expected id 1 seed P10275 size 3, got %+v", first)
	}
	want := []string{"P10275", "Q00987", "P04637"}
	if !reflect.DeepEqual(first.Members, want) {
		t.Errorf("Expected members %v, got %v", want, first.Members)
	}
	if rep.Stats.ElapsedSeconds != 1.5 {
		t.Errorf("Expected elapsed 1.5s, got %v", rep.Stats.ElapsedSeconds)
	}
}

func TestNew_NumericFallback(t *testing.T) {
	rep := New(sampleResult(), nil)

	if rep.Complexes[0].Seed != "0" {
		t.Errorf("Expected numeric seed 0, got %s", rep.Complexes[0].Seed)
	}
	want := []string{"3", "4"}
	if !reflect.DeepEqual(rep.Complexes[1].Members, want) {
		t.Errorf("Expected members %v, got %v", want, rep.Complexes[1].Members)
	}
}

func TestWriteCSV_Format(t *testing.T) {
	rep := New(sampleResult(), sampleNames)

	var buf bytes.Buffer
	if err := rep.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	want := "complex_id,seed,score,density,size,members\n" +
		"1,P10275,3.0000,1.0000,3,P10275;Q00987;P04637\n" +
		"2,O15350,2.0000,1.0000,2,O15350;P38398\n"
	if buf.String() != want {
		t.Errorf("Expected CSV:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	rep := New(sampleResult(), sampleNames)
	rep.Stats.Components = 2

	var buf bytes.Buffer
	if err := rep.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if !reflect.DeepEqual(rep, got) {
		t.Errorf("Expected round-tripped report %+v, got %+v", rep, got)
	}
}

func TestReadJSON_RejectsGarbage(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("not json")); err == nil {
		t.Error("Expected an error for invalid JSON")
	}
}

func TestWriteComponentsCSV(t *testing.T) {
	comps := &components.Result{Count: 2, Labels: []int{0, 0, 1}, Sizes: []int{2, 1}}

	var buf bytes.Buffer
	if err := WriteComponentsCSV(&buf, comps, sampleNames); err != nil {
		t.Fatalf("WriteComponentsCSV failed: %v", err)
	}
	want := "protein,component_id\n" +
		"P10275,0\n" +
		"Q00987,0\n" +
		"P04637,1\n"
	if buf.String() != want {
		t.Errorf("Expected CSV:\n%s\ngot:\n%s", want, buf.String())
	}
}
