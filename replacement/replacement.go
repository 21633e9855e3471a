// Package replacement computes the expected cost per unit time of
// age-based preventive replacement and the replacement age that minimizes
// it, for a component whose failures follow a Weibull distribution.
//
// Two renewal assumptions are supported. Under as-good-as-new replacement
// (HPP) the cost rate follows the renewal-reward theorem and the optimum is
// located numerically on a dense time grid. Under as-good-as-old minimal
// repair (power-law NHPP) the cost rate and its optimum have closed forms.
//
// The as-good-as-old cost curve has no known closed-form decomposition into
// separate preventive and reactive components; in that mode Result's
// Preventive and Reactive series are nil rather than a guessed formula.
package replacement

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/arloliu/repairable/errs"
	"github.com/arloliu/repairable/format"
	"github.com/arloliu/repairable/internal/options"
	"github.com/arloliu/repairable/report"
)

// Result holds the cost model grid and the located optimum.
type Result struct {
	// Mode is the renewal assumption the model ran under.
	Mode format.RenewalMode

	// OptimalTime is the cost-minimizing replacement age. Under
	// as-good-as-new it is a grid point, so its resolution is bounded by
	// the grid density; under as-good-as-old it is the closed-form optimum.
	OptimalTime float64
	// MinCost is the cost per unit time at OptimalTime.
	MinCost float64

	// ReactiveCost approximates the run-to-failure cost rate: the cost per
	// unit time at the grid's upper bound.
	ReactiveCost float64
	// YearlyCost is the cost per unit time of replacing every unit year.
	YearlyCost float64
	// OptimalReactiveRatio is MinCost/ReactiveCost; at or below 1 whenever
	// preventive maintenance is beneficial.
	OptimalReactiveRatio float64
	// YearlyOptimalRatio is MinCost/YearlyCost.
	YearlyOptimalRatio float64

	// Times is the evaluation grid and Cost the cost per unit time at each
	// grid point. Preventive and Reactive decompose Cost under
	// as-good-as-new; both are nil under as-good-as-old, where no
	// closed-form decomposition exists.
	Times      []float64
	Cost       []float64
	Preventive []float64
	Reactive   []float64

	costPM float64
	costCM float64
	scale  float64
	shape  float64

	survival []float64 // as-good-as-new survival values on the grid
	integral []float64 // running integral of survival on the grid
}

// Optimize computes the replacement cost model for the given preventive
// and corrective costs and the Weibull scale/shape of the underlying
// failure distribution.
//
// costPM must be strictly less than costCM; otherwise preventive
// replacement can never pay off and a validation error is returned. A shape
// below 1 means the hazard rate is decreasing, so preventive maintenance is
// uneconomical; this is a non-fatal advisory (logged via WithLogger) and
// the model is still computed for comparison.
func Optimize(costPM, costCM, scale, shape float64, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if !(costPM > 0) || math.IsInf(costPM, 0) || !(costCM > 0) || math.IsInf(costCM, 0) {
		return nil, fmt.Errorf("%w: costs must be positive, got PM=%v CM=%v", errs.ErrValidation, costPM, costCM)
	}
	if costPM >= costCM {
		return nil, fmt.Errorf("%w: PM=%v CM=%v", errs.ErrCostOrder, costPM, costCM)
	}
	if !(scale > 0) || math.IsInf(scale, 0) || !(shape > 0) || math.IsInf(shape, 0) {
		return nil, fmt.Errorf("%w: scale=%v shape=%v", errs.ErrNonPositiveScale, scale, shape)
	}
	if shape < 1 {
		cfg.Logger.Warn("hazard rate is decreasing, preventive maintenance is not economical",
			zap.Float64("weibull_shape", shape))
	}

	res := &Result{
		Mode:   cfg.Mode,
		costPM: costPM,
		costCM: costCM,
		scale:  scale,
		shape:  shape,
	}

	if cfg.Mode == format.RenewalAsGoodAsOld {
		res.solveAsGoodAsOld(cfg)
	} else {
		res.solveAsGoodAsNew(cfg)
	}

	res.OptimalReactiveRatio = res.MinCost / res.ReactiveCost
	res.YearlyOptimalRatio = res.MinCost / res.YearlyCost

	return res, nil
}

// solveAsGoodAsOld evaluates the closed-form minimal-repair cost model:
// CPUT(t) = (costPM*(t/scale)^shape + costCM) / t, with optimum
// scale*(costCM/(costPM*(shape-1)))^(1/shape). The optimum is finite and
// positive only for shape > 1; for shape <= 1 the caller gets the
// degenerate closed-form value and is responsible for checking it.
func (r *Result) solveAsGoodAsOld(cfg Config) {
	r.Times = make([]float64, cfg.GridSize)
	floats.Span(r.Times, 1, 4*r.scale)
	r.Cost = make([]float64, cfg.GridSize)
	for i, t := range r.Times {
		r.Cost[i] = r.cputOld(t)
	}

	r.OptimalTime = r.scale * math.Pow(r.costCM/(r.costPM*(r.shape-1)), 1/r.shape)
	r.MinCost = r.cputOld(r.OptimalTime)
	r.ReactiveCost = r.Cost[len(r.Cost)-1]
	r.YearlyCost = r.cputOld(cfg.UnitYear)
}

// cputOld is the as-good-as-old cost per unit time at replacement age t.
func (r *Result) cputOld(t float64) float64 {
	return (r.costPM*math.Pow(t/r.scale, r.shape) + r.costCM) / t
}

// solveAsGoodAsNew evaluates the renewal-reward cost model on a dense grid
// up to three times the Weibull scale:
//
//	CPUT(t) = (costPM*S(t) + costCM*(1-S(t))) / integral(S, 0, t)
//
// with S the Weibull survival function. The running integral accumulates a
// Simpson step per grid segment, and the grid argmin is the reported
// optimum, so its accuracy is bounded by the grid resolution.
func (r *Result) solveAsGoodAsNew(cfg Config) {
	n := cfg.GridSize
	r.Times = make([]float64, n)
	floats.Span(r.Times, 1, 3*r.scale)

	r.survival = make([]float64, n)
	for i, t := range r.Times {
		r.survival[i] = r.survivalAt(t)
	}

	// Running integral of the survival function from zero, one Simpson
	// step per segment (the leading segment spans [0, Times[0]]).
	r.integral = make([]float64, n)
	acc := simpsonStep(r.survivalAt, 0, r.Times[0], 1, r.survival[0])
	r.integral[0] = acc
	for i := 1; i < n; i++ {
		acc += simpsonStep(r.survivalAt, r.Times[i-1], r.Times[i], r.survival[i-1], r.survival[i])
		r.integral[i] = acc
	}

	r.Cost = make([]float64, n)
	r.Preventive = make([]float64, n)
	r.Reactive = make([]float64, n)
	for i := range r.Times {
		sf := r.survival[i]
		r.Preventive[i] = r.costPM * sf / r.integral[i]
		r.Reactive[i] = r.costCM * (1 - sf) / r.integral[i]
		r.Cost[i] = r.Preventive[i] + r.Reactive[i]
	}

	idx := floats.MinIdx(r.Cost)
	r.OptimalTime = r.Times[idx]
	r.MinCost = r.Cost[idx]
	r.ReactiveCost = r.Cost[n-1]

	// Yearly comparator, integrated independently of the grid.
	sfYear := r.survivalAt(cfg.UnitYear)
	integralYear := quad.Fixed(r.survivalAt, 0, cfg.UnitYear, 80, nil, 0)
	r.YearlyCost = (r.costPM*sfYear + r.costCM*(1-sfYear)) / integralYear
}

// survivalAt is the Weibull survival function S(t) = exp(-(t/scale)^shape).
func (r *Result) survivalAt(t float64) float64 {
	return math.Exp(-math.Pow(t/r.scale, r.shape))
}

// simpsonStep integrates f over [a, b] from known endpoint values plus one
// midpoint evaluation.
func simpsonStep(f func(float64) float64, a, b, fa, fb float64) float64 {
	return (b - a) / 6 * (fa + 4*f((a+b)/2) + fb)
}

// RatioSweep recomputes the optimal replacement interval across a range of
// corrective/preventive cost ratios, from 1 up to twice the configured
// ratio, re-deriving the optimum per ratio with the same technique as the
// primary solve (closed form under as-good-as-old, grid argmin under
// as-good-as-new).
func (r *Result) RatioSweep() (ratios, intervals []float64) {
	const sweepLen = 200
	upper := math.Round(r.costCM/r.costPM) * 2
	ratios = make([]float64, sweepLen)
	floats.Span(ratios, 1, upper)

	intervals = make([]float64, sweepLen)
	for i, ratio := range ratios {
		cm := ratio * r.costPM
		if r.Mode == format.RenewalAsGoodAsOld {
			intervals[i] = r.scale * math.Pow(cm/(r.costPM*(r.shape-1)), 1/r.shape)

			continue
		}

		best := 0
		bestCost := math.Inf(1)
		for j := range r.Times {
			cost := (r.costPM*r.survival[j] + cm*(1-r.survival[j])) / r.integral[j]
			if cost < bestCost {
				bestCost = cost
				best = j
			}
		}
		intervals[i] = r.Times[best]
	}

	return ratios, intervals
}

// Figure builds the cost-vs-replacement-time payload for the rendering
// collaborator: the total cost curve, the preventive/reactive components
// when available, and the optimum and yearly markers.
func (r *Result) Figure() report.Figure {
	fig := report.Figure{
		Title:  "Optimal replacement time estimation",
		XLabel: "Replacement time",
		YLabel: "Cost per unit time",
		Lines: []report.Series{
			{Label: "cost per unit time", X: r.Times, Y: r.Cost},
		},
		Points: []report.Series{
			{Label: "optimum", X: []float64{r.OptimalTime}, Y: []float64{r.MinCost}},
		},
	}
	if r.Preventive != nil {
		fig.Lines = append(fig.Lines,
			report.Series{Label: "preventive maintenance", X: r.Times, Y: r.Preventive},
			report.Series{Label: "reactive maintenance", X: r.Times, Y: r.Reactive},
		)
	}

	return fig
}

// Table builds the result rows for the tabular collaborator.
func (r *Result) Table() report.Table {
	return report.Table{
		Columns: []string{"Quantity", "Value"},
		Rows: [][]string{
			{"Renewal assumption", r.Mode.String()},
			{"Optimal replacement time", report.Cell(r.OptimalTime)},
			{"Minimum cost per unit time", report.Cell(r.MinCost)},
			{"Reactive-only cost per unit time", report.Cell(r.ReactiveCost)},
			{"Yearly replacement cost per unit time", report.Cell(r.YearlyCost)},
			{"Optimal / reactive ratio", report.Cell(r.OptimalReactiveRatio)},
			{"Optimal / yearly ratio", report.Cell(r.YearlyOptimalRatio)},
		},
	}
}
