package dataset

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultSTRINGMinScore keeps interactions with combined_score >= 700.
const DefaultSTRINGMinScore = 700

const stringSource = "string"

// ParseSTRINGMapping reads the STRING-to-UniProt mapping TSV: each row
// carries the '|'-separated uniprot field in column 2 and the STRING id
// in column 3. The first token of the uniprot field is the accession.
func ParseSTRINGMapping(r io.Reader) (map[string]string, error) {
	mapping := make(map[string]string)
	scanner := newLineScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return nil, &LineError{Source: "string-mapping", Line: lineNo, Detail: "empty line"}
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, &LineError{
				Source: "string-mapping",
				Line:   lineNo,
				Detail: fmt.Sprintf("expected at least 3 tab-separated columns, got %d", len(fields)),
			}
		}
		uniprot := fields[1]
		if i := strings.IndexByte(uniprot, '|'); i >= 0 {
			uniprot = uniprot[:i]
		}
		mapping[fields[2]] = uniprot
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading string mapping: %w", err)
	}
	return mapping, nil
}

// ParseSTRING reads a STRING links file: header line, then
// space-separated `protein1 protein2 combined_score` rows. STRING ids
// are translated to UniProt accessions via mapping; rows mentioning an
// unmapped protein are dropped and counted.
func ParseSTRING(r io.Reader, mapping map[string]string, opts *ParseOptions) (*EdgeList, ParseStats, error) {
	if opts == nil {
		opts = &ParseOptions{MinScore: DefaultSTRINGMinScore}
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
			return nil, b.stats, &LineError{Source: stringSource, Line: lineNo, Detail: "empty line"}
		}
		b.stats.RowsRead++

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, b.stats, &LineError{
				Source: stringSource,
				Line:   lineNo,
				Detail: fmt.Sprintf("expected 3 space-separated columns, got %d", len(fields)),
			}
		}
		score, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, b.stats, &LineError{
				Source: stringSource,
				Line:   lineNo,
				Detail: fmt.Sprintf("bad combined score %q", fields[2]),
			}
		}
		if score < opts.MinScore {
			b.stats.BelowThreshold++
			continue
		}

		a, okA := mapping[fields[0]]
		c, okC := mapping[fields[1]]
		if !okA || !okC {
			b.stats.Unmapped++
			continue
		}
		b.add(a, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, b.stats, fmt.Errorf("reading string input: %w", err)
	}

	edges, stats := b.finish()
	return edges, stats, nil
}
