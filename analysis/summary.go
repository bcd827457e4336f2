// Package analysis derives the summary views and the diagnostic regression
// model consumed by the figure renderer. Every function is deterministic:
// identical datasets yield identical views, and group orderings follow the
// dataset's categorical orderings rather than map iteration.
package analysis

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/veloscope/stagereport/dataset"
	"github.com/veloscope/stagereport/pkg/errors"
)

// ClassEntry counts the stage entries of one rider class.
type ClassEntry struct {
	RiderClass string
	Entries    int
}

// ClassEntries returns the stage-entry count per rider class, in the
// dataset's rider-class order.
func ClassEntries(ds *dataset.Dataset) []ClassEntry {
	df := ds.Frame()
	out := make([]ClassEntry, 0, len(ds.RiderClasses()))
	for _, rc := range ds.RiderClasses() {
		sub := df.Filter(dataframe.F{Colname: "rider_class", Comparator: series.Eq, Comparando: rc})
		out = append(out, ClassEntry{RiderClass: rc, Entries: sub.Nrow()})
	}
	return out
}

// StageTotal is the summed points of one stage class.
type StageTotal struct {
	StageClass string
	Points     float64
}

// StagePointTotals returns the total points per stage class in race-profile
// order.
func StagePointTotals(ds *dataset.Dataset) []StageTotal {
	sums := make(map[string]float64)
	for _, rec := range ds.Records {
		sums[rec.StageClass] += rec.Points
	}
	out := make([]StageTotal, 0, len(ds.StageClasses()))
	for _, sc := range ds.StageClasses() {
		out = append(out, StageTotal{StageClass: sc, Points: sums[sc]})
	}
	return out
}

// RiderTotal is the summed points of one rider.
type RiderTotal struct {
	Rider  string
	Points float64
}

// TopRiders returns the n riders with the highest total points, descending,
// ties broken by name. It returns nil (and raises a MissingColumnWarning)
// when the source table has no rider column.
func TopRiders(ds *dataset.Dataset, n int) []RiderTotal {
	if !ds.HasRiders {
		errors.Warn(errors.NewMissingColumnWarning("all_riders", "top riders view"))
		return nil
	}
	sums := make(map[string]float64)
	for _, rec := range ds.Records {
		sums[rec.Rider] += rec.Points
	}
	totals := make([]RiderTotal, 0, len(sums))
	for rider, pts := range sums {
		totals = append(totals, RiderTotal{Rider: rider, Points: pts})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Points != totals[j].Points {
			return totals[i].Points > totals[j].Points
		}
		return totals[i].Rider < totals[j].Rider
	})
	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// Cell is the summary of one (stage class, rider class) grouping cell.
type Cell struct {
	StageClass string
	RiderClass string
	Count      int
	Sum        float64
	Mean       float64
	Std        float64 // sample standard deviation; 0 when Count < 2
}

// GroupSummary holds the per-cell summaries keyed by (stage class, rider
// class), plus the shared orderings so callers can walk the cells
// deterministically.
type GroupSummary struct {
	StageClasses []string
	RiderClasses []string

	cells map[[2]string]Cell
}

// GroupMeans computes the per-cell point summaries. Unobserved cells raise an
// EmptyGroupWarning and are absent from the result.
func GroupMeans(ds *dataset.Dataset) *GroupSummary {
	byCell := make(map[[2]string][]float64)
	for _, rec := range ds.Records {
		k := [2]string{rec.StageClass, rec.RiderClass}
		byCell[k] = append(byCell[k], rec.Points)
	}

	gs := &GroupSummary{
		StageClasses: ds.StageClasses(),
		RiderClasses: ds.RiderClasses(),
		cells:        make(map[[2]string]Cell),
	}
	for _, sc := range gs.StageClasses {
		for _, rc := range gs.RiderClasses {
			k := [2]string{sc, rc}
			pts, ok := byCell[k]
			if !ok {
				errors.Warn(errors.NewEmptyGroupWarning(sc, rc))
				continue
			}
			c := Cell{
				StageClass: sc,
				RiderClass: rc,
				Count:      len(pts),
				Mean:       stat.Mean(pts, nil),
			}
			for _, p := range pts {
				c.Sum += p
			}
			if len(pts) > 1 {
				c.Std = stat.StdDev(pts, nil)
			}
			gs.cells[k] = c
		}
	}
	return gs
}

// Cell returns the summary of one grouping cell and whether it was observed.
func (gs *GroupSummary) Cell(stageClass, riderClass string) (Cell, bool) {
	c, ok := gs.cells[[2]string{stageClass, riderClass}]
	return c, ok
}

// Cells returns every observed cell, ordered by stage class then rider class.
func (gs *GroupSummary) Cells() []Cell {
	out := make([]Cell, 0, len(gs.cells))
	for _, sc := range gs.StageClasses {
		for _, rc := range gs.RiderClasses {
			if c, ok := gs.Cell(sc, rc); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// ClassPoints is the raw points vector of one rider class.
type ClassPoints struct {
	RiderClass string
	Points     []float64
}

// PointsByClass returns the raw points of each rider class, in rider-class
// order, for the density and box views.
func PointsByClass(ds *dataset.Dataset) []ClassPoints {
	df := ds.Frame()
	out := make([]ClassPoints, 0, len(ds.RiderClasses()))
	for _, rc := range ds.RiderClasses() {
		sub := df.Filter(dataframe.F{Colname: "rider_class", Comparator: series.Eq, Comparando: rc})
		out = append(out, ClassPoints{RiderClass: rc, Points: sub.Col("points").Float()})
	}
	return out
}

// PointsByStageAndClass returns the raw points of each rider class on one
// stage class. Classes without entries on that stage are omitted.
func PointsByStageAndClass(ds *dataset.Dataset, stageClass string) []ClassPoints {
	byClass := make(map[string][]float64)
	for _, rec := range ds.Records {
		if rec.StageClass == stageClass {
			byClass[rec.RiderClass] = append(byClass[rec.RiderClass], rec.Points)
		}
	}
	out := make([]ClassPoints, 0, len(byClass))
	for _, rc := range ds.RiderClasses() {
		if pts, ok := byClass[rc]; ok {
			out = append(out, ClassPoints{RiderClass: rc, Points: pts})
		}
	}
	return out
}

// StageBox pairs a stage class with the per-class point vectors observed on
// it, for the grouped box views.
type StageBox struct {
	StageClass string
	Classes    []ClassPoints
}

// BoxGrid returns one StageBox per stage class, in race-profile order.
func BoxGrid(ds *dataset.Dataset) []StageBox {
	out := make([]StageBox, 0, len(ds.StageClasses()))
	for _, sc := range ds.StageClasses() {
		out = append(out, StageBox{
			StageClass: sc,
			Classes:    PointsByStageAndClass(ds, sc),
		})
	}
	return out
}

// MaxPoints returns the largest points value in the dataset.
func MaxPoints(ds *dataset.Dataset) float64 {
	max := 0.0
	for i, rec := range ds.Records {
		if i == 0 || rec.Points > max {
			max = rec.Points
		}
	}
	return max
}
