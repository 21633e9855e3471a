package rocof

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/repairable/errs"
	"github.com/arloliu/repairable/format"
)

func TestRunConstantTrend(t *testing.T) {
	// Perfectly uniform interarrival times center the Laplace statistic at
	// zero: mean cumulative time equals half the horizon exactly.
	interarrival := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}

	res, err := Run(Input{Interarrival: interarrival})
	require.NoError(t, err)

	require.InDelta(t, 0, res.U, 1e-9)
	require.Equal(t, format.TrendConstant, res.Trend)

	// Under a constant trend the HPP rate is reported and the power law is
	// not applicable.
	require.True(t, res.HasROCOF)
	require.False(t, res.HasPowerLaw)
	require.InEpsilon(t, 0.1, res.ROCOF, 1e-12) // (9+1)/100
	require.Len(t, res.MTBF, len(interarrival))
	assert.InEpsilon(t, 10.0, res.MTBF[0], 1e-12)
}

func TestRunWorseningTrend(t *testing.T) {
	// Sharply shrinking interarrival times concentrate failures late in
	// the window, pushing U above the upper critical bound.
	interarrival := []float64{100, 80, 60, 40, 20, 10, 5, 2, 1, 1}

	res, err := Run(Input{Interarrival: interarrival})
	require.NoError(t, err)

	require.Equal(t, format.TrendWorsening, res.Trend)
	require.Greater(t, res.U, res.ZCritUpper)

	// Non-constant trend reports the NHPP power law instead of a single
	// ROCOF value, with Beta above 1 for a worsening system.
	require.True(t, res.HasPowerLaw)
	require.False(t, res.HasROCOF)
	require.Greater(t, res.Beta, 1.0)
	require.Positive(t, res.Lambda)

	// Interior events only: the final failure closes the window.
	require.Len(t, res.MTBF, len(interarrival)-1)
}

func TestRunImprovingTrend(t *testing.T) {
	interarrival := []float64{1, 1, 2, 5, 10, 20, 40, 60, 80, 100}

	res, err := Run(Input{Interarrival: interarrival})
	require.NoError(t, err)

	require.Equal(t, format.TrendImproving, res.Trend)
	require.Less(t, res.U, res.ZCritLower)
	require.True(t, res.HasPowerLaw)
	require.Less(t, res.Beta, 1.0)
}

func TestRunPowerLawClosedForm(t *testing.T) {
	interarrival := []float64{100, 80, 60, 40, 20, 10, 5, 2, 1, 1}

	res, err := Run(Input{Interarrival: interarrival})
	require.NoError(t, err)
	require.True(t, res.HasPowerLaw)

	// Beta = k / sum(ln(T/t_i)) over the interior cumulative times and
	// Lambda = k / T^Beta.
	tn := 0.0
	for _, d := range interarrival {
		tn += d
	}
	k := float64(len(interarrival))
	sumLog := 0.0
	cum := 0.0
	for _, d := range interarrival[:len(interarrival)-1] {
		cum += d
		sumLog += math.Log(tn / cum)
	}
	require.InEpsilon(t, k/sumLog, res.Beta, 1e-12)
	require.InEpsilon(t, k/math.Pow(tn, res.Beta), res.Lambda, 1e-12)
}

func TestRunFailureTimesMatchesInterarrival(t *testing.T) {
	interarrival := []float64{32, 51, 43, 18, 50, 10, 6, 17, 41}
	failureTimes := make([]float64, len(interarrival))
	cum := 0.0
	for i, d := range interarrival {
		cum += d
		failureTimes[i] = cum
	}

	a, err := Run(Input{Interarrival: interarrival})
	require.NoError(t, err)
	b, err := Run(Input{FailureTimes: failureTimes})
	require.NoError(t, err)

	require.InDelta(t, a.U, b.U, 1e-9)
	require.Equal(t, a.Trend, b.Trend)
}

func TestRunTestEnd(t *testing.T) {
	interarrival := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}

	// Supplying a test horizon makes all events interior.
	res, err := Run(Input{Interarrival: interarrival}, WithTestEnd(120))
	require.NoError(t, err)
	require.Equal(t, format.TrendConstant, res.Trend)
	require.InEpsilon(t, 11.0/100.0, res.ROCOF, 1e-12) // (10+1)/100

	// A horizon before the final failure is invalid.
	_, err = Run(Input{Interarrival: interarrival}, WithTestEnd(90))
	require.ErrorIs(t, err, errs.ErrTestEndTooEarly)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestRunInputValidation(t *testing.T) {
	t.Run("both inputs", func(t *testing.T) {
		_, err := Run(Input{Interarrival: []float64{1}, FailureTimes: []float64{1}})
		require.ErrorIs(t, err, errs.ErrConflictingInput)
		require.ErrorIs(t, err, errs.ErrConfiguration)
	})

	t.Run("neither input", func(t *testing.T) {
		_, err := Run(Input{})
		require.ErrorIs(t, err, errs.ErrConflictingInput)
	})

	t.Run("non-positive interarrival", func(t *testing.T) {
		_, err := Run(Input{Interarrival: []float64{5, 0, 3}})
		require.ErrorIs(t, err, errs.ErrNonPositiveTime)
	})

	t.Run("too few events", func(t *testing.T) {
		_, err := Run(Input{Interarrival: []float64{5}})
		require.ErrorIs(t, err, errs.ErrTooFewEvents)
	})

	t.Run("confidence level bounds", func(t *testing.T) {
		for _, ci := range []float64{0, 1, -0.5, 1.5} {
			_, err := Run(Input{Interarrival: []float64{5, 5, 5}}, WithConfidenceLevel(ci))
			require.ErrorIs(t, err, errs.ErrInvalidConfidence, "CI=%v", ci)
		}
	})
}

func TestFigure(t *testing.T) {
	res, err := Run(Input{Interarrival: []float64{10, 10, 10, 10, 10}})
	require.NoError(t, err)

	fig := res.Figure()
	require.Len(t, fig.Lines, 1)
	require.Len(t, fig.Points, 1)
	require.Equal(t, res.MTBFIndex, fig.Lines[0].X)
	require.Len(t, fig.Points[0].X, 5)
}
