// Package mcf estimates the Mean Cumulative Function of repairable
// systems: the expected cumulative number of repairs per system as a
// function of time.
//
// Two estimators are provided. Nonparametric computes the censored-data
// point estimate with variance and one-sided log-normal confidence bounds
// across one or more systems. Parametric consumes the nonparametric
// failure-only points and fits the two-parameter power-law model
// MCF = (t/alpha)^beta, classifying the repair rate as improving, constant
// or worsening from beta's confidence interval.
//
// Input is constructed once at the boundary:
//
//	times := mcf.MultiSystem(
//		[]float64{5, 10, 15, 17},
//		[]float64{6, 13, 17, 19},
//	)
//	np, err := mcf.Nonparametric(times, mcf.WithConfidenceLevel(0.95))
//
// Within each system the largest time is the retirement (right-censoring)
// time; a repeated terminal value marks a system retired immediately after
// its last repair.
package mcf
