// Package rocof tests failure times for a trend in the rate of occurrence
// of failures (ROCOF) using the Laplace test. A statistically significant
// trend is reported with the maximum-likelihood parameters of an NHPP
// power-law model; the absence of one is reported with the constant ROCOF
// of the homogeneous Poisson process.
package rocof

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arloliu/repairable/errs"
	"github.com/arloliu/repairable/format"
	"github.com/arloliu/repairable/internal/options"
	"github.com/arloliu/repairable/internal/timeline"
	"github.com/arloliu/repairable/report"
)

// Input selects exactly one representation of the failure history: either
// failure inter-arrival times or absolute failure times. Absolute times are
// sorted and differenced internally; the inter-arrival form is used as-is.
// Supplying both or neither is a configuration error.
type Input struct {
	// Interarrival holds the failure inter-arrival times.
	Interarrival []float64
	// FailureTimes holds the absolute failure times measured from test start.
	FailureTimes []float64
}

// Result holds the Laplace test outcome.
//
// Exactly one of the two model reports is populated: Beta/Lambda when the
// trend is improving or worsening (HasPowerLaw), or ROCOF when the trend is
// constant (HasROCOF). A single ROCOF value is undefined when the rate
// varies with time, and the power-law parameters are not applicable under a
// constant-rate assumption.
type Result struct {
	// U is the Laplace test statistic.
	U float64
	// ZCritLower and ZCritUpper bound the acceptance region of the test.
	ZCritLower float64
	ZCritUpper float64
	// Trend is the classification of U against the critical bounds.
	Trend format.Trend
	// ConfidenceLevel is the confidence level the test was run at.
	ConfidenceLevel float64

	// HasPowerLaw reports whether Beta and Lambda are populated.
	HasPowerLaw bool
	// Beta is the NHPP power-law shape parameter.
	Beta float64
	// Lambda is the NHPP power-law scale parameter.
	Lambda float64

	// HasROCOF reports whether ROCOF is populated.
	HasROCOF bool
	// ROCOF is the constant rate of occurrence of failures.
	ROCOF float64

	// Interarrival is the inter-arrival series the test ran on.
	Interarrival []float64
	// MTBF is the per-event model MTBF series for rendering; its x values
	// are in MTBFIndex (failure numbers, 1-based).
	MTBF      []float64
	MTBFIndex []float64
}

// Run performs the Laplace trend test on the given failure history.
//
// Without a test-end override the test is failure terminated: the final
// failure closes the observation window and the statistic runs over the
// k-1 interior events. With WithTestEnd the window is the supplied horizon
// and all k events are interior.
func Run(in Input, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	ti, err := resolveInput(in)
	if err != nil {
		return nil, err
	}

	total := timeline.Sum(ti)
	var (
		tn float64
		n  int
	)
	if cfg.HasTestEnd {
		if cfg.TestEnd < total {
			return nil, fmt.Errorf("%w: test end %v < final failure %v", errs.ErrTestEndTooEarly, cfg.TestEnd, total)
		}
		tn = cfg.TestEnd
		n = len(ti)
	} else {
		tn = total
		n = len(ti) - 1
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: the Laplace test needs at least one interior event", errs.ErrTooFewEvents)
	}

	// Cumulative failure times over the interior events.
	tc := make([]float64, n)
	sum := 0.0
	sumTC := 0.0
	for i := 0; i < n; i++ {
		sum += ti[i]
		tc[i] = sum
		sumTC += sum
	}

	zCrit := distuv.UnitNormal.Quantile((1 - cfg.CI) / 2)
	u := (sumTC/float64(n) - tn/2) / (tn * math.Sqrt(1/(12*float64(n))))

	res := &Result{
		U:               u,
		ZCritLower:      zCrit,
		ZCritUpper:      -zCrit,
		ConfidenceLevel: cfg.CI,
		Interarrival:    ti,
	}

	switch {
	case u < zCrit:
		res.Trend = format.TrendImproving
	case u > -zCrit:
		res.Trend = format.TrendWorsening
	default:
		res.Trend = format.TrendConstant
	}

	k := float64(len(ti))
	if res.Trend == format.TrendConstant {
		res.HasROCOF = true
		res.ROCOF = (float64(n) + 1) / total
		res.MTBF = make([]float64, len(ti))
		res.MTBFIndex = make([]float64, len(ti))
		for i := range ti {
			res.MTBF[i] = 1 / res.ROCOF
			res.MTBFIndex[i] = float64(i + 1)
		}

		return res, nil
	}

	// Closed-form NHPP power-law MLE.
	sumLog := 0.0
	for _, t := range tc {
		sumLog += math.Log(tn / t)
	}
	res.HasPowerLaw = true
	res.Beta = k / sumLog
	res.Lambda = k / math.Pow(tn, res.Beta)

	res.MTBF = make([]float64, n)
	res.MTBFIndex = make([]float64, n)
	for i, t := range tc {
		res.MTBF[i] = 1 / (res.Lambda * res.Beta * math.Pow(t, res.Beta-1))
		res.MTBFIndex[i] = float64(i + 1)
	}

	return res, nil
}

// resolveInput applies the mutually-exclusive input rule and normalizes the
// history into inter-arrival times.
func resolveInput(in Input) ([]float64, error) {
	switch {
	case in.Interarrival != nil && in.FailureTimes != nil:
		return nil, fmt.Errorf("%w: both inter-arrival and failure times given", errs.ErrConflictingInput)
	case in.Interarrival == nil && in.FailureTimes == nil:
		return nil, fmt.Errorf("%w: neither inter-arrival nor failure times given", errs.ErrConflictingInput)
	case in.Interarrival != nil:
		ti, _, err := timeline.FromIntervals(in.Interarrival)

		return ti, err
	default:
		sorted, err := timeline.SortedAbsolute(in.FailureTimes)
		if err != nil {
			return nil, err
		}

		return timeline.Intervals(sorted), nil
	}
}

// Figure builds the interarrival-vs-failure-number payload for the
// rendering collaborator: the observed scatter and the model MTBF line.
func (r *Result) Figure() report.Figure {
	x := make([]float64, len(r.Interarrival))
	for i := range x {
		x[i] = float64(i + 1)
	}

	return report.Figure{
		Title:  fmt.Sprintf("Failure interarrival times vs failure number (ROCOF is %s)", r.Trend),
		XLabel: "Failure number",
		YLabel: "Times between failures",
		Lines: []report.Series{
			{Label: "MTBF", X: r.MTBFIndex, Y: r.MTBF},
		},
		Points: []report.Series{
			{Label: "Failure interarrival times", X: x, Y: r.Interarrival},
		},
	}
}
