// Package dataset loads the whitespace-delimited stage-results table into an
// ordered, immutable in-memory dataset.
package dataset

import (
	"sort"

	"github.com/go-gota/gota/dataframe"

	"github.com/veloscope/stagereport/pkg/errors"
)

// stageOrder is the fixed race-profile ordering used for every grouped view.
var stageOrder = []string{"flat", "hills", "mount"}

// StageRecord is one row of the source table. Records are immutable once
// loaded.
type StageRecord struct {
	Rider      string  `dataframe:"rider"`
	RiderClass string  `dataframe:"rider_class"`
	Stage      string  `dataframe:"stage"`
	Points     float64 `dataframe:"points"`
	StageClass string  `dataframe:"stage_class"`
}

// Dataset is the ordered collection of stage records for one pipeline run,
// together with the categorical orderings every downstream view shares:
// stage classes in race-profile order and rider classes by descending mean
// points.
type Dataset struct {
	Records []StageRecord

	// HasRiders reports whether the source table carried a rider-name
	// column. Views keyed on individual riders are skipped without it.
	HasRiders bool

	stageClasses []string
	riderClasses []string
}

// newDataset derives the categorical orderings from the loaded records.
func newDataset(records []StageRecord, hasRiders bool) (*Dataset, error) {
	if len(records) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyDataset)
	}

	d := &Dataset{Records: records, HasRiders: hasRiders}

	// Stage classes: fixed flat < hills < mount ordering, any class outside
	// the known profiles appended alphabetically.
	seen := make(map[string]bool)
	for _, rec := range records {
		seen[rec.StageClass] = true
	}
	for _, sc := range stageOrder {
		if seen[sc] {
			d.stageClasses = append(d.stageClasses, sc)
			delete(seen, sc)
		}
	}
	var extra []string
	for sc := range seen {
		extra = append(extra, sc)
	}
	sort.Strings(extra)
	d.stageClasses = append(d.stageClasses, extra...)

	// Rider classes: descending mean points, ties broken by name.
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range records {
		sums[rec.RiderClass] += rec.Points
		counts[rec.RiderClass]++
	}
	for rc := range counts {
		d.riderClasses = append(d.riderClasses, rc)
	}
	sort.Slice(d.riderClasses, func(i, j int) bool {
		a, b := d.riderClasses[i], d.riderClasses[j]
		ma := sums[a] / float64(counts[a])
		mb := sums[b] / float64(counts[b])
		if ma != mb {
			return ma > mb
		}
		return a < b
	})

	return d, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// StageClasses returns the stage classes in race-profile order.
func (d *Dataset) StageClasses() []string {
	return d.stageClasses
}

// RiderClasses returns the rider classes ordered by descending mean points.
func (d *Dataset) RiderClasses() []string {
	return d.riderClasses
}

// Frame returns a gota dataframe view of the records for column-oriented
// filtering and statistics.
func (d *Dataset) Frame() dataframe.DataFrame {
	return dataframe.LoadStructs(d.Records)
}
