package dataset

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const csvSource = "csv"

// unknownAccession marks proteins the upstream cleaning step could not
// map; rows mentioning it are dropped.
const unknownAccession = "unknown"

// ParseCleanedCSV reads the intermediate `protein_a,protein_b,score`
// format produced by the cleaning scripts: header line, comma-separated
// rows, integer scores. Rows carrying an unmapped protein are dropped
// and counted. The score threshold defaults to 0 since cleaned files
// are pre-thresholded.
func ParseCleanedCSV(r io.Reader, opts *ParseOptions) (*EdgeList, ParseStats, error) {
	if opts == nil {
		opts = &ParseOptions{MinScore: 0}
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
			return nil, b.stats, &LineError{Source: csvSource, Line: lineNo, Detail: "empty line"}
		}
		b.stats.RowsRead++

		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, b.stats, &LineError{
				Source: csvSource,
				Line:   lineNo,
				Detail: fmt.Sprintf("expected 3 comma-separated columns, got %d", len(fields)),
			}
		}
		score, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, b.stats, &LineError{
				Source: csvSource,
				Line:   lineNo,
				Detail: fmt.Sprintf("bad score %q", fields[2]),
			}
		}
		if score < opts.MinScore {
			b.stats.BelowThreshold++
			continue
		}

		a, c := fields[0], fields[1]
		if a == unknownAccession || c == unknownAccession {
			b.stats.Unmapped++
			continue
		}
		b.add(a, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, b.stats, fmt.Errorf("reading csv input: %w", err)
	}

	edges, stats := b.finish()
	return edges, stats, nil
}
