package metrics

import (
	"time"
)

// Pipeline stage labels used with RecordStage.
const (
	StageParse    = "parse"
	StageCoreness = "coreness"
	StageWeight   = "weight"
	StageExpand   = "expand"
	StagePost     = "post"
)

// RecordStage records the duration of one pipeline stage
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRun records the outcome counters of one clustering run
func (r *Registry) RecordRun(status string, seedsExpanded, candidatesEmitted int) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.SeedsExpanded.Add(float64(seedsExpanded))
	r.CandidatesEmitted.Add(float64(candidatesEmitted))
}

// ObserveComplex records one emitted complex
func (r *Registry) ObserveComplex(score float64, size int) {
	r.ComplexesFound.Inc()
	r.ComplexScore.Observe(score)
	r.ComplexSize.Observe(float64(size))
}

// SetGraphSize updates the loaded-graph gauges
func (r *Registry) SetGraphSize(vertices, edges int) {
	r.GraphVertices.Set(float64(vertices))
	r.GraphEdges.Set(float64(edges))
}

// SetGraphShape updates the structural gauges computed per run
func (r *Registry) SetGraphShape(components, maxCoreness int) {
	r.GraphComponents.Set(float64(components))
	r.GraphMaxCoreness.Set(float64(maxCoreness))
}

// RecordDatasetRow counts one parsed dataset row by outcome
func (r *Registry) RecordDatasetRow(source, outcome string) {
	r.DatasetRowsTotal.WithLabelValues(source, outcome).Inc()
}

// RecordParse records the row outcomes of one completed dataset parse
func (r *Registry) RecordParse(source string, accepted, belowThreshold, unmapped, selfInteractions, duplicates int) {
	r.DatasetRowsTotal.WithLabelValues(source, "accepted").Add(float64(accepted))
	r.DatasetRowsTotal.WithLabelValues(source, "below_threshold").Add(float64(belowThreshold))
	r.DatasetRowsTotal.WithLabelValues(source, "unmapped").Add(float64(unmapped))
	r.DatasetRowsTotal.WithLabelValues(source, "self_interaction").Add(float64(selfInteractions))
	r.DatasetRowsTotal.WithLabelValues(source, "duplicate").Add(float64(duplicates))
}

// RecordFetch records a dataset download
func (r *Registry) RecordFetch(scheme, status string, bytes int64) {
	r.DatasetFetchesTotal.WithLabelValues(scheme, status).Inc()
	if bytes > 0 {
		r.DatasetFetchBytes.Add(float64(bytes))
	}
}

// RecordSnapshotLoad counts a snapshot load attempt
func (r *Registry) RecordSnapshotLoad(status string) {
	r.SnapshotLoadsTotal.WithLabelValues(status).Inc()
}

// RecordSnapshotWrite records a snapshot write
func (r *Registry) RecordSnapshotWrite(duration time.Duration, bytes int64) {
	r.SnapshotWriteDuration.Observe(duration.Seconds())
	r.SnapshotSizeBytes.Set(float64(bytes))
}
