package mcf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arloliu/repairable/errs"
	"github.com/arloliu/repairable/format"
	"github.com/arloliu/repairable/internal/options"
	"github.com/arloliu/repairable/report"
)

// ParametricResult holds the fitted power-law MCF model, MCF = (t/Alpha)^Beta.
type ParametricResult struct {
	// Times and MCF are the nonparametric failure-only points the model was
	// fitted to.
	Times []float64
	MCF   []float64

	// Alpha is the scale parameter, Beta the shape parameter.
	Alpha float64
	Beta  float64

	// Standard errors and covariance from the fit's covariance matrix.
	AlphaSE      float64
	BetaSE       float64
	CovAlphaBeta float64

	// Log-normal confidence bounds on each parameter.
	AlphaLower float64
	AlphaUpper float64
	BetaLower  float64
	BetaUpper  float64

	// Trend classifies the repair rate from Beta's confidence interval:
	// upper bound at or below 1 is improving, an interval straddling 1 is
	// constant, a lower bound above 1 is worsening.
	Trend format.Trend

	// ConfidenceLevel is the level the two-sided parameter bounds use.
	ConfidenceLevel float64

	// Nonparametric is the estimate the fit consumed.
	Nonparametric *NonparametricResult

	z float64 // two-sided Z, kept for the confidence band
}

// Parametric fits the two-parameter power-law MCF model to the
// nonparametric estimate of the given repair histories.
//
// The initial guess comes from a least-squares regression of the
// log-linearized model; a nonlinear least-squares refinement starting from
// that guess produces the final parameters, their standard errors and their
// covariance. Parameter confidence bounds are log-normal and two-sided.
func Parametric(in Input, opts ...Option) (*ParametricResult, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	np, err := Nonparametric(in, WithConfidenceLevel(cfg.CI))
	if err != nil {
		return nil, err
	}
	if len(np.Times) < 3 {
		return nil, fmt.Errorf("%w: the parametric MCF fit needs at least three failure events", errs.ErrTooFewEvents)
	}

	alpha, beta, err := fitPowerLaw(np.Times, np.MCF)
	if err != nil {
		return nil, err
	}

	varAlpha, varBeta, covAB := covariance(np.Times, np.MCF, alpha, beta)

	z := -distuv.UnitNormal.Quantile((1 - cfg.CI) / 2)
	res := &ParametricResult{
		Times:           np.Times,
		MCF:             np.MCF,
		Alpha:           alpha,
		Beta:            beta,
		AlphaSE:         math.Sqrt(varAlpha),
		BetaSE:          math.Sqrt(varBeta),
		CovAlphaBeta:    covAB,
		ConfidenceLevel: cfg.CI,
		Nonparametric:   np,
		z:               z,
	}
	res.AlphaLower = alpha * math.Exp(-z*res.AlphaSE/alpha)
	res.AlphaUpper = alpha * math.Exp(z*res.AlphaSE/alpha)
	res.BetaLower = beta * math.Exp(-z*res.BetaSE/beta)
	res.BetaUpper = beta * math.Exp(z*res.BetaSE/beta)

	switch {
	case res.BetaUpper <= 1:
		res.Trend = format.TrendImproving
	case res.BetaLower < 1 && res.BetaUpper > 1:
		res.Trend = format.TrendConstant
	default:
		res.Trend = format.TrendWorsening
	}

	return res, nil
}

// fitPowerLaw fits MCF = (t/alpha)^beta by nonlinear least squares.
//
// The search runs over (ln alpha, beta) so the scale stays positive, with
// the analytic gradient of the squared-error objective. The starting point
// is the log-log linear regression solution, which is already close; the
// refinement tightens it on the untransformed residuals.
func fitPowerLaw(times, mcf []float64) (alpha, beta float64, err error) {
	n := len(times)
	lnX := make([]float64, n)
	lnY := make([]float64, n)
	for i := range times {
		lnX[i] = math.Log(times[i])
		lnY[i] = math.Log(mcf[i])
	}
	intercept, slope := stat.LinearRegression(lnX, lnY, nil, false)
	betaGuess := slope
	logAlphaGuess := -intercept / slope

	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			la, b := p[0], p[1]
			sse := 0.0
			for i := range times {
				f := math.Exp(b * (lnX[i] - la))
				d := f - mcf[i]
				sse += d * d
			}

			return sse
		},
		Grad: func(grad, p []float64) {
			la, b := p[0], p[1]
			grad[0], grad[1] = 0, 0
			for i := range times {
				f := math.Exp(b * (lnX[i] - la))
				d := f - mcf[i]
				grad[0] += 2 * d * (-b * f)
				grad[1] += 2 * d * (lnX[i] - la) * f
			}
		},
	}

	result, err := optimize.Minimize(problem, []float64{logAlphaGuess, betaGuess}, nil, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("power-law refinement failed: %w", err)
	}

	return math.Exp(result.Location.X[0]), result.Location.X[1], nil
}

// covariance estimates the parameter covariance matrix at the optimum as
// s²·(JᵀJ)⁻¹, with J the Jacobian of the model in (alpha, beta) space and
// s² the residual variance on n-2 degrees of freedom.
func covariance(times, mcf []float64, alpha, beta float64) (varAlpha, varBeta, covAB float64) {
	n := len(times)
	jac := mat.NewDense(n, 2, nil)
	sse := 0.0
	for i, t := range times {
		f := math.Pow(t/alpha, beta)
		d := f - mcf[i]
		sse += d * d
		jac.Set(i, 0, -(beta/alpha)*f)
		jac.Set(i, 1, f*math.Log(t/alpha))
	}
	sigma2 := sse / float64(n-2)

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)

	var inv mat.Dense
	if err := inv.Inverse(&jtj); err != nil {
		// Degenerate Jacobian; report zero uncertainty rather than NaN.
		return 0, 0, 0
	}

	return sigma2 * inv.At(0, 0), sigma2 * inv.At(1, 1), sigma2 * inv.At(0, 1)
}

// Eval evaluates the fitted model at time t.
func (r *ParametricResult) Eval(t float64) float64 {
	return math.Pow(t/r.Alpha, r.Beta)
}

// ConfidenceBand propagates the parameter covariance through the model at
// each time, returning log-normal lower/upper bounds on the fitted curve.
func (r *ParametricResult) ConfidenceBand(ts []float64) (lower, upper []float64) {
	lower = make([]float64, len(ts))
	upper = make([]float64, len(ts))
	varAlpha := r.AlphaSE * r.AlphaSE
	varBeta := r.BetaSE * r.BetaSE
	for i, t := range ts {
		y := r.Eval(t)
		p1 := -(r.Beta / r.Alpha) * y
		p2 := y * math.Log(t/r.Alpha)
		sd := math.Sqrt(varAlpha*p1*p1 + varBeta*p2*p2 + 2*p1*p2*r.CovAlphaBeta)
		lower[i] = y * math.Exp(-r.z*sd/y)
		upper[i] = y * math.Exp(r.z*sd/y)
	}

	return lower, upper
}

// Figure builds the fitted-curve payload for the rendering collaborator:
// the model line, its propagated confidence band and the nonparametric
// scatter it was fitted to.
func (r *ParametricResult) Figure() report.Figure {
	maxT := r.Times[len(r.Times)-1]
	const gridLen = 1000
	x := make([]float64, gridLen)
	y := make([]float64, gridLen)
	for i := range x {
		x[i] = maxT * float64(i+1) / gridLen
		y[i] = r.Eval(x[i])
	}
	lower, upper := r.ConfidenceBand(x)

	return report.Figure{
		Title:  fmt.Sprintf("Parametric estimate of the Mean Cumulative Function (alpha=%.4f, beta=%.4f)", r.Alpha, r.Beta),
		XLabel: "Time",
		YLabel: "Mean cumulative number of failures",
		Lines: []report.Series{
			{Label: "MCF = (t/alpha)^beta", X: x, Y: y},
		},
		Points: []report.Series{
			{Label: "nonparametric MCF", X: r.Times, Y: r.MCF},
		},
		Bands: []report.Band{
			{Label: "confidence bounds", X: x, Lower: lower, Upper: upper},
		},
	}
}

// Table builds the parameter estimate rows for the tabular collaborator.
func (r *ParametricResult) Table() report.Table {
	return report.Table{
		Columns: []string{"Parameter", "Point Estimate", "Standard Error", "Lower CI", "Upper CI"},
		Rows: [][]string{
			{"Alpha", report.Cell(r.Alpha), report.Cell(r.AlphaSE), report.Cell(r.AlphaLower), report.Cell(r.AlphaUpper)},
			{"Beta", report.Cell(r.Beta), report.Cell(r.BetaSE), report.Cell(r.BetaLower), report.Cell(r.BetaUpper)},
		},
	}
}
