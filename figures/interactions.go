package figures

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/veloscope/stagereport/analysis"
)

// meansCI carries interaction means with symmetric 95% confidence half-widths
// for error-bar plotting.
type meansCI struct {
	xs, ys, halfs []float64
}

func (m meansCI) Len() int                    { return len(m.xs) }
func (m meansCI) XY(i int) (float64, float64) { return m.xs[i], m.ys[i] }
func (m meansCI) YError(i int) (float64, float64) {
	return m.halfs[i], m.halfs[i]
}

// Interactions renders the composite interaction figure: the mean-points
// profile of every rider class across stage profiles (with 95% CI bars) over
// one boxplot panel per stage profile.
func (r *Renderer) Interactions(gs *analysis.GroupSummary, grid []analysis.StageBox) error {
	top, err := interactionMeansPlot(gs)
	if err != nil {
		return err
	}

	panels := make([]*plot.Plot, len(grid))
	for i, sb := range grid {
		panels[i], err = stagePanel(sb, gs.RiderClasses, i == 0)
		if err != nil {
			return err
		}
	}

	img := vgimg.New(14*vg.Inch, 8*vg.Inch)
	dc := draw.New(img)
	sz := dc.Rectangle.Size()

	topC := draw.Crop(dc, 0, 0, sz.Y/2, 0)
	botC := draw.Crop(dc, 0, 0, 0, -sz.Y/2)
	top.Draw(topC)

	n := vg.Length(len(panels))
	for i, p := range panels {
		left := sz.X * vg.Length(i) / n
		right := sz.X*vg.Length(i+1)/n - sz.X
		p.Draw(draw.Crop(botC, left, right, 0, 0))
	}

	return r.saveCanvas(img, "fig_interactions.png")
}

func interactionMeansPlot(gs *analysis.GroupSummary) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Stage Class"
	p.Y.Label.Text = "Mean Points"

	for c, rc := range gs.RiderClasses {
		var m meansCI
		for s, sc := range gs.StageClasses {
			cell, ok := gs.Cell(sc, rc)
			if !ok {
				continue
			}
			half := 0.0
			if cell.Count > 1 {
				half = 1.96 * cell.Std / math.Sqrt(float64(cell.Count))
			}
			m.xs = append(m.xs, float64(s))
			m.ys = append(m.ys, cell.Mean)
			m.halfs = append(m.halfs, half)
		}
		if m.Len() == 0 {
			continue
		}

		line, pts, err := plotter.NewLinePoints(plotter.XYs(toXYs(m.xs, m.ys)))
		if err != nil {
			return nil, err
		}
		line.Color = classColor(c)
		pts.Color = classColor(c)
		pts.Shape = draw.CircleGlyph{}

		bars, err := plotter.NewYErrorBars(m)
		if err != nil {
			return nil, err
		}
		bars.LineStyle.Color = classColor(c)

		p.Add(line, pts, bars)
		p.Legend.Add(rc, line, pts)
	}

	p.NominalX(gs.StageClasses...)
	p.Legend.Top = true
	return p, nil
}

func stagePanel(sb analysis.StageBox, riderClasses []string, withYLabel bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = sb.StageClass
	p.X.Label.Text = "Rider Class"
	if withYLabel {
		p.Y.Label.Text = "Points"
	}

	classIndex := make(map[string]int, len(riderClasses))
	for i, rc := range riderClasses {
		classIndex[rc] = i
	}

	for _, cp := range sb.Classes {
		c := classIndex[cp.RiderClass]
		b, err := plotter.NewBoxPlot(vg.Points(18), float64(c), plotter.Values(cp.Points))
		if err != nil {
			return nil, err
		}
		b.FillColor = classColor(c)
		b.GlyphStyle.Radius = 0
		p.Add(b)
	}

	p.NominalX(riderClasses...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	return p, nil
}

func toXYs(xs, ys []float64) plotter.XYs {
	out := make(plotter.XYs, len(xs))
	for i := range xs {
		out[i].X = xs[i]
		out[i].Y = ys[i]
	}
	return out
}
