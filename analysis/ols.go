package analysis

import (
	"gonum.org/v1/gonum/mat"

	"github.com/veloscope/stagereport/dataset"
	"github.com/veloscope/stagereport/pkg/errors"
)

// InteractionModel is the fitted diagnostic regression of points on rider
// class, stage class, and their interaction (treatment coding). With the full
// interaction present the fitted value of every record is its cell mean, so
// the residuals measure within-cell variation only.
type InteractionModel struct {
	// Terms labels the design-matrix columns, "intercept" first.
	Terms []string
	// Coef holds one coefficient per term.
	Coef []float64
	// Fitted and Residuals are per-record, in dataset order.
	Fitted    []float64
	Residuals []float64
	// R2 is the coefficient of determination.
	R2 float64
}

// FitInteraction fits the interaction model with ordinary least squares.
// The first (in categorical order) rider class and stage class are the
// reference levels; dummy columns with no observations are dropped so sparse
// designs stay full rank. A rank-deficient design yields a
// SingularModelError.
func FitInteraction(ds *dataset.Dataset) (*InteractionModel, error) {
	n := ds.Len()
	if n == 0 {
		return nil, errors.WithStack(errors.ErrEmptyDataset)
	}

	riderClasses := ds.RiderClasses()
	stageClasses := ds.StageClasses()

	// Column layout: intercept, rider dummies, stage dummies, interactions.
	type column struct {
		term  string
		rider string // empty = any
		stage string // empty = any
	}
	cols := []column{{term: "intercept"}}
	for _, rc := range riderClasses[1:] {
		cols = append(cols, column{term: "rider_class[" + rc + "]", rider: rc})
	}
	for _, sc := range stageClasses[1:] {
		cols = append(cols, column{term: "stage_class[" + sc + "]", stage: sc})
	}
	for _, rc := range riderClasses[1:] {
		for _, sc := range stageClasses[1:] {
			cols = append(cols, column{
				term:  "rider_class[" + rc + "]:stage_class[" + sc + "]",
				rider: rc,
				stage: sc,
			})
		}
	}

	value := func(rec dataset.StageRecord, c column) float64 {
		if c.rider != "" && rec.RiderClass != c.rider {
			return 0
		}
		if c.stage != "" && rec.StageClass != c.stage {
			return 0
		}
		return 1
	}

	// Drop columns with no observations (unobserved interaction cells) and
	// columns that duplicate an earlier one, which happens when a dummy and
	// an interaction coincide on sparse designs. Both would make the solve
	// rank deficient.
	var (
		kept []column
		seen []string
	)
	for _, c := range cols {
		key := make([]byte, n)
		nonzero := false
		for i, rec := range ds.Records {
			if value(rec, c) != 0 {
				key[i] = 1
				nonzero = true
			}
		}
		if !nonzero {
			continue
		}
		dup := false
		for _, s := range seen {
			if s == string(key) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen = append(seen, string(key))
		kept = append(kept, c)
	}
	cols = kept

	p := len(cols)
	X := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i, rec := range ds.Records {
		for j, c := range cols {
			X.Set(i, j, value(rec, c))
		}
		y.SetVec(i, rec.Points)
	}

	// Least-squares solve via QR; mirrors the normal-equation fit of a plain
	// linear regression but tolerates tall sparse designs better. An
	// ill-conditioned (but solvable) system is reported by gonum as a
	// mat.Condition value and is acceptable here.
	var coef mat.VecDense
	if err := coef.SolveVec(X, y); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, errors.NewSingularModelError("FitInteraction", err)
		}
	}

	m := &InteractionModel{
		Terms:     make([]string, p),
		Coef:      make([]float64, p),
		Fitted:    make([]float64, n),
		Residuals: make([]float64, n),
	}
	for j, c := range cols {
		m.Terms[j] = c.term
		m.Coef[j] = coef.AtVec(j)
	}

	var fitted mat.VecDense
	fitted.MulVec(X, &coef)

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += y.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		m.Fitted[i] = fitted.AtVec(i)
		m.Residuals[i] = y.AtVec(i) - m.Fitted[i]
		d := y.AtVec(i) - yMean
		tss += d * d
		rss += m.Residuals[i] * m.Residuals[i]
	}
	if tss > 0 {
		m.R2 = 1 - rss/tss
	}
	return m, nil
}
