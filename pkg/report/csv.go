package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/lazear/mcode/pkg/components"
)

// WriteCSV writes one row per complex. Members are ';'-joined in the
// final column so the file stays one-row-per-complex.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"complex_id", "seed", "score", "density", "size", "members"}); err != nil {
		return err
	}
	for _, c := range r.Complexes {
		record := []string{
			strconv.Itoa(c.ID),
			c.Seed,
			strconv.FormatFloat(c.Score, 'f', 4, 64),
			strconv.FormatFloat(c.Density, 'f', 4, 64),
			strconv.Itoa(c.Size),
			strings.Join(c.Members, ";"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteComponentsCSV writes the vertex-to-component assignment in the
// protein,component_id shape the cleaning pipeline emits.
func WriteComponentsCSV(w io.Writer, comps *components.Result, names []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"protein", "component_id"}); err != nil {
		return err
	}
	for v, label := range comps.Labels {
		if err := cw.Write([]string{vertexName(names, v), strconv.Itoa(label)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
