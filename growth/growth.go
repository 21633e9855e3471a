package growth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/repairable/errs"
	"github.com/arloliu/repairable/format"
	"github.com/arloliu/repairable/internal/options"
	"github.com/arloliu/repairable/internal/timeline"
	"github.com/arloliu/repairable/report"
)

// Result holds the fitted reliability growth model.
//
// The parameter pairs are model-specific: Beta/Lambda (and GrowthRate) are
// populated for Crow-AMSAA, Alpha/A for Duane. The four demonstrated
// quantities are derived from the fitted parameters at the final failure
// time and are populated for both models.
type Result struct {
	// Model is the fitted growth model.
	Model format.GrowthModel

	// Beta is the Crow-AMSAA shape parameter.
	Beta float64
	// Lambda is the Crow-AMSAA scale parameter.
	Lambda float64
	// GrowthRate is 1 - Beta for the Crow-AMSAA model.
	GrowthRate float64

	// Alpha is the Duane slope parameter.
	Alpha float64
	// A is the Duane parameter 1/b where b is the exponentiated intercept.
	A float64

	// DMTBFCumulative is the demonstrated cumulative MTBF at the final failure.
	DMTBFCumulative float64
	// DMTBFInstantaneous is the demonstrated instantaneous MTBF at the final failure.
	DMTBFInstantaneous float64
	// DFICumulative is the demonstrated cumulative failure intensity, 1/DMTBFCumulative.
	DFICumulative float64
	// DFIInstantaneous is the demonstrated instantaneous failure intensity, 1/DMTBFInstantaneous.
	DFIInstantaneous float64

	// HasTarget reports whether a target MTBF was configured. TimeToTarget
	// is only meaningful when HasTarget is true.
	HasTarget    bool
	TargetMTBF   float64
	TimeToTarget float64

	// Times holds the sorted failure times the model was fitted to.
	Times []float64
	// CumulativeMTBF holds the observed cumulative MTBF scatter, t_i / i.
	CumulativeMTBF []float64

	b float64 // Duane exponentiated intercept, kept for curve evaluation
}

// Fit fits a reliability growth model to absolute failure times.
//
// The default model is Duane; use WithModel or WithModelName to select
// Crow-AMSAA. An optional target MTBF (WithTargetMTBF) is inverted through
// the cumulative-MTBF model to obtain the time to reach it.
//
// Returns a validation error when times is empty or contains a non-positive
// or non-finite value, and a configuration error for an unknown model name.
func Fit(times []float64, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	sorted, err := timeline.SortedAbsolute(times)
	if err != nil {
		return nil, err
	}

	n := len(sorted)
	maxTime := sorted[n-1]

	// Observed cumulative MTBF at the i-th failure: t_i / i.
	mtbfC := make([]float64, n)
	for i, t := range sorted {
		mtbfC[i] = t / float64(i+1)
	}

	res := &Result{
		Model:          cfg.Model,
		Times:          sorted,
		CumulativeMTBF: mtbfC,
	}

	switch cfg.Model {
	case format.ModelCrowAMSAA:
		sumLog := 0.0
		for _, t := range sorted {
			sumLog += math.Log(t)
		}
		res.Beta = float64(n) / (float64(n)*math.Log(maxTime) - sumLog)
		res.Lambda = float64(n) / math.Pow(maxTime, res.Beta)
		res.GrowthRate = 1 - res.Beta
		res.DMTBFInstantaneous = 1 / (res.Lambda * res.Beta * math.Pow(maxTime, res.Beta-1))
		res.DFIInstantaneous = 1 / res.DMTBFInstantaneous
		res.DMTBFCumulative = (1 / res.Lambda) * math.Pow(maxTime, 1-res.Beta)
		res.DFICumulative = 1 / res.DMTBFCumulative
	case format.ModelDuane:
		// Log-linear least squares of ln(cumulative MTBF) on ln(time).
		lnT := make([]float64, n)
		lnM := make([]float64, n)
		for i := range sorted {
			lnT[i] = math.Log(sorted[i])
			lnM[i] = math.Log(mtbfC[i])
		}
		intercept, slope := stat.LinearRegression(lnT, lnM, nil, false)
		res.Alpha = slope
		res.b = math.Exp(intercept)
		res.A = 1 / res.b
		res.DMTBFCumulative = res.b * math.Pow(maxTime, res.Alpha)
		res.DFICumulative = 1 / res.DMTBFCumulative
		res.DFIInstantaneous = (1 - res.Alpha) * res.DFICumulative
		res.DMTBFInstantaneous = 1 / res.DFIInstantaneous
	default:
		return nil, fmt.Errorf("%w: %v", errs.ErrUnknownModel, cfg.Model)
	}

	if cfg.HasTarget {
		res.HasTarget = true
		res.TargetMTBF = cfg.TargetMTBF
		if cfg.Model == format.ModelCrowAMSAA {
			res.TimeToTarget = math.Pow(1/(res.Lambda*cfg.TargetMTBF), 1/(res.Beta-1))
		} else {
			res.TimeToTarget = math.Pow(cfg.TargetMTBF/res.b, 1/res.Alpha)
		}
	}

	return res, nil
}

// MTBF evaluates the fitted cumulative-MTBF model at time t.
func (r *Result) MTBF(t float64) float64 {
	if r.Model == format.ModelCrowAMSAA {
		return 1 / (r.Lambda * math.Pow(t, r.Beta-1))
	}

	return r.b * math.Pow(t, r.Alpha)
}

// Figure builds the MTBF-vs-time payload for the rendering collaborator:
// the fitted curve, the observed cumulative-MTBF scatter, and the target
// trace when a target MTBF was configured.
func (r *Result) Figure() report.Figure {
	xmax := r.Times[len(r.Times)-1]
	if r.HasTarget && r.TimeToTarget > xmax {
		xmax = r.TimeToTarget
	}
	xmax *= 2

	const gridLen = 1000
	x := make([]float64, gridLen)
	floats.Span(x, xmax/gridLen, xmax)
	y := make([]float64, gridLen)
	for i, t := range x {
		y[i] = r.MTBF(t)
	}

	fig := report.Figure{
		Title:  "MTBF vs Time",
		XLabel: "Time",
		YLabel: "Cumulative MTBF",
		Lines: []report.Series{
			{Label: r.Model.String() + " reliability growth curve", X: x, Y: y},
		},
		Points: []report.Series{
			{Label: "Cumulative MTBF", X: r.Times, Y: r.CumulativeMTBF},
		},
	}
	if r.HasTarget {
		fig.Lines = append(fig.Lines, report.Series{
			Label: "Target MTBF",
			X:     []float64{0, r.TimeToTarget, r.TimeToTarget},
			Y:     []float64{r.TargetMTBF, r.TargetMTBF, 0},
		})
	}

	return fig
}

// Table builds the fitted-parameter rows for the tabular collaborator.
func (r *Result) Table() report.Table {
	tbl := report.Table{Columns: []string{"Parameter", "Value"}}
	if r.Model == format.ModelCrowAMSAA {
		tbl.Rows = append(tbl.Rows,
			[]string{"Beta", report.Cell(r.Beta)},
			[]string{"Lambda", report.Cell(r.Lambda)},
			[]string{"Growth rate", report.Cell(r.GrowthRate)},
		)
	} else {
		tbl.Rows = append(tbl.Rows,
			[]string{"Alpha", report.Cell(r.Alpha)},
			[]string{"A", report.Cell(r.A)},
		)
	}
	tbl.Rows = append(tbl.Rows,
		[]string{"Demonstrated MTBF (cumulative)", report.Cell(r.DMTBFCumulative)},
		[]string{"Demonstrated MTBF (instantaneous)", report.Cell(r.DMTBFInstantaneous)},
		[]string{"Demonstrated failure intensity (cumulative)", report.Cell(r.DFICumulative)},
		[]string{"Demonstrated failure intensity (instantaneous)", report.Cell(r.DFIInstantaneous)},
	)
	if r.HasTarget {
		tbl.Rows = append(tbl.Rows, []string{"Time to reach target MTBF", report.Cell(r.TimeToTarget)})
	}

	return tbl
}
