package dataset

import (
	"errors"
	"strings"
	"testing"
)

const bioplexHeader = "GeneA\tGeneB\tUniprotA\tUniprotB\tSymbolA\tSymbolB\tpW\tpNI\tpInt\n"

func bioplexRow(a, b, p string) string {
	return "100\t200\t" + a + "\t" + b + "\tSYMA\tSYMB\t0.01\t0.04\t" + p + "\n"
}

func TestParseBioPlex_KeepsHighConfidenceRows(t *testing.T) {
	input := bioplexHeader +
		bioplexRow("P10275", "Q00987", "0.95") +
		bioplexRow("P04637", "O15350", "0.75")

	el, stats, err := ParseBioPlex(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ParseBioPlex failed: %v", err)
	}
	if el.NumVertices() != 4 {
		t.Errorf("Expected 4 proteins, got %d", el.NumVertices())
	}
	if el.NumEdges() != 2 {
		t.Errorf("Expected 2 interactions, got %d", el.NumEdges())
	}
	if stats.RowsRead != 2 || stats.Accepted != 2 {
		t.Errorf("Expected 2 rows read and accepted, got %+v", stats)
	}
}

func TestParseBioPlex_FiltersLowConfidenceRows(t *testing.T) {
	input := bioplexHeader +
		bioplexRow("P10275", "Q00987", "0.95") +
		bioplexRow("P04637", "O15350", "0.25")

	el, stats, err := ParseBioPlex(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ParseBioPlex failed: %v", err)
	}
	if el.NumEdges() != 1 {
		t.Errorf("Expected 1 interaction above threshold, got %d", el.NumEdges())
	}
	if stats.BelowThreshold != 1 {
		t.Errorf("Expected 1 row below threshold, got %d", stats.BelowThreshold)
	}
	if el.NumVertices() != 2 {
		t.Errorf("Expected filtered proteins to stay uninterned, got %d", el.NumVertices())
	}
}

func TestParseBioPlex_StripsIsoformSuffix(t *testing.T) {
	input := bioplexHeader + bioplexRow("P10275-2", "Q00987", "0.95")

	el, _, err := ParseBioPlex(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ParseBioPlex failed: %v", err)
	}
	if len(el.Names) != 2 || el.Names[0] != "P10275" {
		t.Errorf("Expected isoform suffix stripped to P10275, got %v", el.Names)
	}
}

func TestParseBioPlex_DropsSelfInteractions(t *testing.T) {
	input := bioplexHeader + bioplexRow("P10275-1", "P10275-3", "0.95")

	el, stats, err := ParseBioPlex(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ParseBioPlex failed: %v", err)
	}
	if el.NumEdges() != 0 {
		t.Errorf("Expected isoform pair to collapse to a dropped self-interaction, got %d edges", el.NumEdges())
	}
	if stats.SelfInteractions != 1 {
		t.Errorf("Expected 1 self-interaction, got %d", stats.SelfInteractions)
	}
}

func TestParseBioPlex_DropsDuplicatePairs(t *testing.T) {
	input := bioplexHeader +
		bioplexRow("P10275", "Q00987", "0.95") +
		bioplexRow("Q00987", "P10275", "0.85")

	el, stats, err := ParseBioPlex(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ParseBioPlex failed: %v", err)
	}
	if el.NumEdges() != 1 {
		t.Errorf("Expected reversed pair deduplicated, got %d edges", el.NumEdges())
	}
	if stats.Duplicates != 1 {
		t.Errorf("Expected 1 duplicate, got %d", stats.Duplicates)
	}
}

func TestParseBioPlex_RejectsShortRow(t *testing.T) {
	input := bioplexHeader + "100\t200\tP10275\n"

	el, _, err := ParseBioPlex(strings.NewReader(input), nil)
	if el != nil {
		t.Error("Expected no edge list on a malformed row")
	}
	if !IsMalformedLine(err) {
		t.Fatalf("Expected a malformed line error, got %v", err)
	}
	var lineErr *LineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("Expected a LineError, got %T", err)
	}
	if lineErr.Line != 2 {
		t.Errorf("Expected failure on line 2, got %d", lineErr.Line)
	}
}

func TestParseBioPlex_RejectsBadProbability(t *testing.T) {
	input := bioplexHeader + bioplexRow("P10275", "Q00987", "high")

	_, _, err := ParseBioPlex(strings.NewReader(input), nil)
	if !IsMalformedLine(err) {
		t.Fatalf("Expected a malformed line error, got %v", err)
	}
}

func TestParseBioPlex_RejectsBlankLine(t *testing.T) {
	input := bioplexHeader + bioplexRow("P10275", "Q00987", "0.95") + "\n" + bioplexRow("P04637", "O15350", "0.95")

	_, _, err := ParseBioPlex(strings.NewReader(input), nil)
	var lineErr *LineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("Expected a LineError for the blank line, got %v", err)
	}
	if lineErr.Line != 3 {
		t.Errorf("Expected failure on line 3, got %d", lineErr.Line)
	}
}

func TestParseBioPlex_CustomThreshold(t *testing.T) {
	input := bioplexHeader + bioplexRow("P10275", "Q00987", "0.25")

	el, _, err := ParseBioPlex(strings.NewReader(input), &ParseOptions{MinScore: 200})
	if err != nil {
		t.Fatalf("ParseBioPlex failed: %v", err)
	}
	if el.NumEdges() != 1 {
		t.Errorf("Expected the lowered threshold to admit the row, got %d edges", el.NumEdges())
	}
}

func TestParseBioPlex_HeaderOnly(t *testing.T) {
	el, stats, err := ParseBioPlex(strings.NewReader(bioplexHeader), nil)
	if err != nil {
		t.Fatalf("ParseBioPlex failed: %v", err)
	}
	if el.NumVertices() != 0 || el.NumEdges() != 0 {
		t.Errorf("Expected an empty edge list, got %d vertices %d edges", el.NumVertices(), el.NumEdges())
	}
	if stats.RowsRead != 0 {
		t.Errorf("Expected 0 rows read, got %d", stats.RowsRead)
	}
}

func TestStripIsoform(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"P10275", "P10275"},
		{"P10275-2", "P10275"},
		{"P10275-12", "P10275"},
		{"A0A024R1R8-1", "A0A024R1R8"},
	}
	for _, c := range cases {
		if got := stripIsoform(c.in); got != c.want {
			t.Errorf("stripIsoform(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}
