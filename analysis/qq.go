package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// QQ holds the coordinates of a normal probability plot: sorted sample values
// against standard-normal quantiles at Blom-style plotting positions, plus a
// reference line fitted through the quartiles.
type QQ struct {
	Theoretical []float64
	Sample      []float64

	LineSlope     float64
	LineIntercept float64
}

// NormalQQ builds the QQ view of the given values (typically model
// residuals). The input slice is not modified.
func NormalQQ(values []float64) QQ {
	n := len(values)
	q := QQ{
		Theoretical: make([]float64, n),
		Sample:      make([]float64, n),
	}
	if n == 0 {
		return q
	}

	copy(q.Sample, values)
	sort.Float64s(q.Sample)

	norm := distuv.UnitNormal
	for i := 0; i < n; i++ {
		// a = 0.375 plotting positions.
		pos := (float64(i+1) - 0.375) / (float64(n) + 0.25)
		q.Theoretical[i] = norm.Quantile(pos)
	}

	// Reference line through the sample and theoretical quartiles.
	t25 := norm.Quantile(0.25)
	t75 := norm.Quantile(0.75)
	s25 := stat.Quantile(0.25, stat.Empirical, q.Sample, nil)
	s75 := stat.Quantile(0.75, stat.Empirical, q.Sample, nil)
	if t75 != t25 {
		q.LineSlope = (s75 - s25) / (t75 - t25)
		q.LineIntercept = s25 - q.LineSlope*t25
	}
	return q
}
