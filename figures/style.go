package figures

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

var (
	steelBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	zeroRed   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// classColor returns the shared per-rider-class color so a class looks the
// same in every figure.
func classColor(i int) color.Color {
	return plotutil.Color(i)
}

// legendLine adds a colored line entry to the legend without adding a
// plotter to the plot. Used where the drawn plotter has no thumbnail.
func legendLine(p *plot.Plot, name string, c color.Color) {
	l, err := plotter.NewLine(plotter.XYs{})
	if err != nil {
		return
	}
	l.Color = c
	p.Legend.Add(name, l)
}

// legendSwatch adds a filled rectangle entry to the legend.
func legendSwatch(p *plot.Plot, name string, c color.Color) {
	b, err := plotter.NewBarChart(plotter.Values{}, 1)
	if err != nil {
		return
	}
	b.Color = c
	p.Legend.Add(name, b)
}
