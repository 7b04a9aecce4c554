package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultBioPlexMinScore keeps interactions with p(interaction) >= 0.7
// on the scaled 0..1000 range.
const DefaultBioPlexMinScore = 700

const bioplexSource = "bioplex"

// ParseBioPlex reads a BioPlex network TSV: header line, then one
// interaction per row with UniProt accessions in columns 3 and 4 and
// p(interaction) in the last column. Isoform suffixes are stripped at
// the first '-', the probability is scaled by 1000 and thresholded.
func ParseBioPlex(r io.Reader, opts *ParseOptions) (*EdgeList, ParseStats, error) {
	if opts == nil {
		opts = &ParseOptions{MinScore: DefaultBioPlexMinScore}
	}

	b := newBuilder()
	scanner := newLineScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return nil, b.stats, &LineError{Source: bioplexSource, Line: lineNo, Detail: "empty line"}
		}
		b.stats.RowsRead++

		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			return nil, b.stats, &LineError{
				Source: bioplexSource,
				Line:   lineNo,
				Detail: fmt.Sprintf("expected at least 4 tab-separated columns, got %d", len(fields)),
			}
		}
		p, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return nil, b.stats, &LineError{
				Source: bioplexSource,
				Line:   lineNo,
				Detail: fmt.Sprintf("bad interaction probability %q", fields[len(fields)-1]),
			}
		}
		score := int(p * 1000)
		if score < opts.MinScore {
			b.stats.BelowThreshold++
			continue
		}

		a := stripIsoform(fields[2])
		c := stripIsoform(fields[3])
		b.add(a, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, b.stats, fmt.Errorf("reading bioplex input: %w", err)
	}

	edges, stats := b.finish()
	return edges, stats, nil
}

// stripIsoform drops the isoform suffix of a UniProt accession
// (P12345-2 -> P12345).
func stripIsoform(accession string) string {
	if i := strings.IndexByte(accession, '-'); i >= 0 {
		return accession[:i]
	}
	return accession
}

// newLineScanner sizes a scanner for large interaction files.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}
