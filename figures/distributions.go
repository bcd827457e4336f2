package figures

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/veloscope/stagereport/analysis"
)

// PointsDensity renders overlaid density-normalized point histograms, one
// step outline per rider class.
func (r *Renderer) PointsDensity(byClass []analysis.ClassPoints, maxPoints float64) error {
	p := plot.New()
	p.X.Label.Text = "Points"
	p.Y.Label.Text = "Density"

	for i, cp := range byClass {
		if len(cp.Points) == 0 {
			continue
		}
		h, err := plotter.NewHist(plotter.Values(cp.Points), 40)
		if err != nil {
			return err
		}
		h.Normalize(1)
		h.FillColor = nil
		h.LineStyle.Color = classColor(i)
		h.LineStyle.Width = vg.Points(1.5)
		p.Add(h)
		legendLine(p, cp.RiderClass, classColor(i))
	}

	p.X.Min = -5
	p.X.Max = maxPoints * 1.05
	p.Legend.Top = true

	return r.savePlot(p, 6.5*vg.Inch, 5*vg.Inch, "fig_points_density.png")
}

// boxGroupWidth is the fraction of one nominal slot occupied by a stage's
// group of boxes.
const boxGroupWidth = 0.8

// StageBoxplots renders grouped boxplots: one nominal slot per stage class,
// one box per rider class within it. Outlier glyphs are suppressed to match
// the reference report.
func (r *Renderer) StageBoxplots(grid []analysis.StageBox, riderClasses []string) error {
	p := plot.New()
	p.X.Label.Text = "Stage Profile"
	p.Y.Label.Text = "Points"

	classIndex := make(map[string]int, len(riderClasses))
	for i, rc := range riderClasses {
		classIndex[rc] = i
	}
	nc := len(riderClasses)

	labels := make([]string, len(grid))
	for s, sb := range grid {
		labels[s] = sb.StageClass
		for _, cp := range sb.Classes {
			c := classIndex[cp.RiderClass]
			loc := float64(s) + (float64(c)-float64(nc-1)/2)*boxGroupWidth/float64(nc)
			b, err := plotter.NewBoxPlot(vg.Points(12), loc, plotter.Values(cp.Points))
			if err != nil {
				return err
			}
			b.FillColor = classColor(c)
			b.GlyphStyle.Radius = 0 // no flier points
			p.Add(b)
		}
	}

	for i, rc := range riderClasses {
		legendSwatch(p, rc, classColor(i))
	}
	p.NominalX(labels...)
	p.Legend.Top = true

	return r.savePlot(p, 6.5*vg.Inch, 5.2*vg.Inch, "fig_stage_boxplots.png")
}
