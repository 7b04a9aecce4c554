// Package report renders clustering results for files, stdout, and the
// results browser. The engine never prints; every output surface goes
// through this package, with vertex ids resolved back to accessions.
package report

import (
	"strconv"

	"github.com/lazear/mcode/pkg/mcode"
)

// Complex is one rendered complex, ranked by run order (1-based).
type Complex struct {
	ID      int      `json:"id"`
	Seed    string   `json:"seed"`
	Score   float64  `json:"score"`
	Density float64  `json:"density"`
	Size    int      `json:"size"`
	Members []string `json:"members"`
}

// RunStats is the serializable view of run statistics.
type RunStats struct {
	Vertices          int     `json:"vertices"`
	Edges             int     `json:"edges"`
	Components        int     `json:"components,omitempty"`
	MaxCoreness       int     `json:"max_coreness"`
	SeedsExpanded     int     `json:"seeds_expanded"`
	CandidatesEmitted int     `json:"candidates_emitted"`
	CorenessSeconds   float64 `json:"coreness_seconds"`
	WeightSeconds     float64 `json:"weight_seconds"`
	ExpandSeconds     float64 `json:"expand_seconds"`
	PostSeconds       float64 `json:"post_seconds"`
	ElapsedSeconds    float64 `json:"elapsed_seconds"`
}

// Report is the rendered form of one clustering run.
type Report struct {
	RunID     string    `json:"run_id"`
	Stats     RunStats  `json:"stats"`
	Complexes []Complex `json:"complexes"`
}

// New builds a report from a run result. names maps vertex ids to
// accessions; ids beyond the table (or a nil table) render numerically.
func New(res *mcode.Result, names []string) *Report {
	r := &Report{
		RunID: res.RunID,
		Stats: RunStats{
			Vertices:          res.Stats.Vertices,
			Edges:             res.Stats.Edges,
			MaxCoreness:       res.Stats.MaxCoreness,
			SeedsExpanded:     res.Stats.SeedsExpanded,
			CandidatesEmitted: res.Stats.CandidatesEmitted,
			CorenessSeconds:   res.Stats.CorenessTime.Seconds(),
			WeightSeconds:     res.Stats.WeightTime.Seconds(),
			ExpandSeconds:     res.Stats.ExpandTime.Seconds(),
			PostSeconds:       res.Stats.PostTime.Seconds(),
			ElapsedSeconds:    res.Stats.Elapsed.Seconds(),
		},
		Complexes: make([]Complex, 0, len(res.Complexes)),
	}
	for i, c := range res.Complexes {
		members := make([]string, len(c.Members))
		for j, v := range c.Members {
			members[j] = vertexName(names, v)
		}
		r.Complexes = append(r.Complexes, Complex{
			ID:      i + 1,
			Seed:    vertexName(names, c.Seed),
			Score:   c.Score,
			Density: c.Density,
			Size:    c.Size(),
			Members: members,
		})
	}
	return r
}

func vertexName(names []string, v int) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return strconv.Itoa(v)
}
