package figures

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/veloscope/stagereport/analysis"
)

// DatasetEntries renders the stage-entry count per rider class as horizontal
// bars, best-scoring class at the top.
func (r *Renderer) DatasetEntries(entries []analysis.ClassEntry) error {
	p := plot.New()
	p.X.Label.Text = "Number of Stage Entries"
	p.Y.Label.Text = "Rider Class"

	// NominalY labels run bottom to top; reverse so the first class lands on
	// top as in the reference report.
	n := len(entries)
	vals := make(plotter.Values, n)
	labels := make([]string, n)
	for i, e := range entries {
		vals[n-1-i] = float64(e.Entries)
		labels[n-1-i] = e.RiderClass
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(18))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = steelBlue
	bars.LineStyle.Width = 0

	p.Add(bars, plotter.NewGrid())
	p.NominalY(labels...)

	return r.savePlot(p, 6.2*vg.Inch, 5.2*vg.Inch, "fig_dataset_entries.png")
}

// StagePoints renders the total points per stage class.
func (r *Renderer) StagePoints(totals []analysis.StageTotal) error {
	p := plot.New()
	p.X.Label.Text = "Stage Profile"
	p.Y.Label.Text = "Total Points"

	vals := make(plotter.Values, len(totals))
	labels := make([]string, len(totals))
	for i, t := range totals {
		vals[i] = t.Points
		labels[i] = t.StageClass
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(30))
	if err != nil {
		return err
	}
	bars.Color = steelBlue
	bars.LineStyle.Width = 0

	p.Add(bars, plotter.NewGrid())
	p.NominalX(labels...)

	return r.savePlot(p, 6.2*vg.Inch, 5.2*vg.Inch, "fig_dataset_stage_points.png")
}

// TopRiders renders the highest-scoring riders as horizontal bars, best rider
// at the top.
func (r *Renderer) TopRiders(totals []analysis.RiderTotal) error {
	p := plot.New()
	p.X.Label.Text = "Points"
	p.Y.Label.Text = "Rider"

	n := len(totals)
	vals := make(plotter.Values, n)
	labels := make([]string, n)
	for i, t := range totals {
		vals[n-1-i] = t.Points
		labels[n-1-i] = t.Rider
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(14))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = steelBlue
	bars.LineStyle.Width = 0

	p.Add(bars, plotter.NewGrid())
	p.NominalY(labels...)

	return r.savePlot(p, 6.4*vg.Inch, 6*vg.Inch, "fig_top_riders.png")
}

// ClassMix renders the points per stage class as stacked bars, one segment
// per rider class.
func (r *Renderer) ClassMix(gs *analysis.GroupSummary) error {
	p := plot.New()
	p.X.Label.Text = "Stage Profile"
	p.Y.Label.Text = "Points"

	var prev *plotter.BarChart
	for c, rc := range gs.RiderClasses {
		vals := make(plotter.Values, len(gs.StageClasses))
		for s, sc := range gs.StageClasses {
			if cell, ok := gs.Cell(sc, rc); ok {
				vals[s] = cell.Sum
			}
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(30))
		if err != nil {
			return err
		}
		bars.Color = classColor(c)
		bars.LineStyle.Width = 0
		if prev != nil {
			bars.StackOn(prev)
		}
		p.Add(bars)
		p.Legend.Add(rc, bars)
		prev = bars
	}

	p.NominalX(gs.StageClasses...)
	p.Legend.Top = true

	return r.savePlot(p, 6.4*vg.Inch, 5.6*vg.Inch, "fig_stage_class_mix.png")
}
