package figures

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/veloscope/stagereport/analysis"
)

// ResidualQQ renders the normal probability plot of the model residuals with
// the quartile reference line.
func (r *Renderer) ResidualQQ(q analysis.QQ) error {
	p := plot.New()
	p.X.Label.Text = "Theoretical Quantiles"
	p.Y.Label.Text = "Sample Quantiles"

	xys := make(plotter.XYs, len(q.Sample))
	for i := range q.Sample {
		xys[i].X = q.Theoretical[i]
		xys[i].Y = q.Sample[i]
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = steelBlue
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(scatter, plotter.NewGrid())

	if n := len(q.Theoretical); n > 0 {
		x0, x1 := q.Theoretical[0], q.Theoretical[n-1]
		ref, err := plotter.NewLine(plotter.XYs{
			{X: x0, Y: q.LineSlope*x0 + q.LineIntercept},
			{X: x1, Y: q.LineSlope*x1 + q.LineIntercept},
		})
		if err != nil {
			return err
		}
		ref.Color = zeroRed
		p.Add(ref)
	}

	return r.savePlot(p, 6.2*vg.Inch, 4.6*vg.Inch, "fig_residual_qq.png")
}

// ResidualScatter renders residuals against fitted values with a dashed zero
// line.
func (r *Renderer) ResidualScatter(m *analysis.InteractionModel) error {
	p := plot.New()
	p.X.Label.Text = "Fitted Values"
	p.Y.Label.Text = "Residuals"

	xys := make(plotter.XYs, len(m.Fitted))
	xMin, xMax := 0.0, 0.0
	for i := range m.Fitted {
		xys[i].X = m.Fitted[i]
		xys[i].Y = m.Residuals[i]
		if i == 0 || m.Fitted[i] < xMin {
			xMin = m.Fitted[i]
		}
		if i == 0 || m.Fitted[i] > xMax {
			xMax = m.Fitted[i]
		}
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = color.NRGBA{R: 31, G: 119, B: 180, A: 90}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	zero, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: 0}, {X: xMax, Y: 0}})
	if err != nil {
		return err
	}
	zero.Color = zeroRed
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(scatter, zero, plotter.NewGrid())

	return r.savePlot(p, 6.2*vg.Inch, 4.6*vg.Inch, "fig_residual_scatter.png")
}
