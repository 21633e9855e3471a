// Package repairable analyzes recurrent-event reliability data from
// repairable systems: sequences of repair or failure timestamps per unit,
// possibly right-censored at a retirement time.
//
// It answers three questions about such data: whether the failure rate is
// trending, which parametric model describes the cumulative failures and
// MTBF over time, and which maintenance replacement interval minimizes the
// long-run cost.
//
// # Analysis packages
//
//   - growth: Duane and Crow-AMSAA reliability growth curve fitting with
//     target-MTBF inversion.
//   - rocof: Laplace trend test over failure interarrival times, with a
//     conditional NHPP power-law rate fit.
//   - mcf: nonparametric Mean Cumulative Function estimation under
//     censoring, and a parametric power-law fit of it.
//   - replacement: renewal-theory cost optimization of the preventive
//     replacement age.
//
// # Basic usage
//
// Growth fitting and trend testing over failure times:
//
//	times := []float64{10, 42, 105, 220, 390}
//	fit, _ := repairable.FitGrowth(times, growth.WithModelName("crow-amsaa"))
//	trend, _ := repairable.LaplaceTrend(rocof.Input{FailureTimes: times})
//
// MCF estimation over several censored systems:
//
//	data := mcf.MultiSystem(
//		[]float64{5, 10, 15, 17},
//		[]float64{6, 13, 17, 19},
//	)
//	np, _ := repairable.NonparametricMCF(data)
//	pm, _ := repairable.ParametricMCF(data)
//
// Replacement cost optimization:
//
//	ort, _ := repairable.OptimalReplacement(1, 5, 1000, 2.5)
//
// Every call is pure and synchronous: inputs are consumed by value, results
// are freshly allocated, and nothing is shared across calls. Rendering and
// tabular output are delegated to collaborators fed through the report
// package; the library itself computes numbers only.
package repairable

import (
	"github.com/arloliu/repairable/growth"
	"github.com/arloliu/repairable/mcf"
	"github.com/arloliu/repairable/replacement"
	"github.com/arloliu/repairable/rocof"
)

// FitGrowth fits a reliability growth model to absolute failure times.
// See growth.Fit.
func FitGrowth(times []float64, opts ...growth.Option) (*growth.Result, error) {
	return growth.Fit(times, opts...)
}

// LaplaceTrend runs the Laplace ROCOF trend test on a failure history.
// See rocof.Run.
func LaplaceTrend(in rocof.Input, opts ...rocof.Option) (*rocof.Result, error) {
	return rocof.Run(in, opts...)
}

// NonparametricMCF estimates the Mean Cumulative Function of one or more
// censored systems. See mcf.Nonparametric.
func NonparametricMCF(in mcf.Input, opts ...mcf.Option) (*mcf.NonparametricResult, error) {
	return mcf.Nonparametric(in, opts...)
}

// ParametricMCF fits the power-law MCF model to the nonparametric estimate.
// See mcf.Parametric.
func ParametricMCF(in mcf.Input, opts ...mcf.Option) (*mcf.ParametricResult, error) {
	return mcf.Parametric(in, opts...)
}

// OptimalReplacement computes the age-replacement cost model and its
// cost-minimizing replacement time. See replacement.Optimize.
func OptimalReplacement(costPM, costCM, weibullScale, weibullShape float64, opts ...replacement.Option) (*replacement.Result, error) {
	return replacement.Optimize(costPM, costCM, weibullScale, weibullShape, opts...)
}
