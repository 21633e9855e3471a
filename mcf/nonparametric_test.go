package mcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/repairable/errs"
)

// fiveSystems is a five-system repair history; each system's last value is
// its retirement time, so it carries 14 repairs and 5 retirements.
func fiveSystems() Input {
	return MultiSystem(
		[]float64{5, 10, 15, 17},
		[]float64{6, 13, 17, 19},
		[]float64{12, 20, 25, 26},
		[]float64{13, 15, 24},
		[]float64{16, 22, 25, 28},
	)
}

func TestNonparametricFiveSystems(t *testing.T) {
	res, err := Nonparametric(fiveSystems())
	require.NoError(t, err)

	require.Len(t, res.Rows, 19)
	require.Len(t, res.Times, 14)

	// All five systems stay at risk through the first ten repairs, so each
	// contributes exactly 1/5. The retirements at 17, 19 and 24 then shrink
	// the risk set to 3 and finally 2.
	want := []float64{
		0.2, 0.4, 0.6, 0.8, 1.0, 1.2, 1.4, 1.6, 1.8, 2.0,
		2.0 + 1.0/3, 2.0 + 2.0/3, 2.0 + 2.0/3 + 0.5, 2.0 + 2.0/3 + 1.0,
	}
	for i, m := range want {
		require.InDelta(t, m, res.MCF[i], 1e-12, "MCF[%d]", i)
	}

	// Variance increments depend only on the current risk set size.
	require.InDelta(t, 0.032, res.Variance[0], 1e-12)
	require.InDelta(t, res.Variance[9]+2.0/27, res.Variance[10], 1e-12)
	require.InDelta(t, res.Variance[11]+0.125, res.Variance[12], 1e-12)

	for i := range res.Times {
		if i > 0 {
			assert.GreaterOrEqual(t, res.MCF[i], res.MCF[i-1])
			assert.GreaterOrEqual(t, res.Variance[i], res.Variance[i-1])
			assert.GreaterOrEqual(t, res.Times[i], res.Times[i-1])
		}
		assert.LessOrEqual(t, res.Lower[i], res.MCF[i])
		assert.GreaterOrEqual(t, res.Upper[i], res.MCF[i])
	}
}

func TestNonparametricRowOrdering(t *testing.T) {
	res, err := Nonparametric(fiveSystems())
	require.NoError(t, err)

	// Time ascending, with repairs ahead of same-time retirements.
	censored := 0
	for i, row := range res.Rows {
		if i > 0 {
			prev := res.Rows[i-1]
			require.GreaterOrEqual(t, row.Time, prev.Time)
			if row.Time == prev.Time && prev.State == StateCensored {
				require.Equal(t, StateCensored, row.State)
			}
		}
		if row.State == StateCensored {
			censored++
			require.Nil(t, row.Observed)
		} else {
			require.NotNil(t, row.Observed)
		}
	}
	require.Equal(t, 5, censored)
}

func TestNonparametricImmediateRetirement(t *testing.T) {
	// A repeated terminal value is a system retired right after its only
	// repair: one failure row at MCF=1 with zero variance, one censor row.
	res, err := Nonparametric(SingleSystem(9, 9))
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	require.Equal(t, StateFailure, res.Rows[0].State)
	require.Equal(t, StateCensored, res.Rows[1].State)

	obs := res.Rows[0].Observed
	require.NotNil(t, obs)
	require.InDelta(t, 1.0, obs.MCF, 1e-15)
	require.InDelta(t, 0.0, obs.Variance, 1e-15)
	require.InDelta(t, 1.0, obs.Lower, 1e-15)
	require.InDelta(t, 1.0, obs.Upper, 1e-15)
}

func TestNonparametricEarlyRetirementShrinksRiskSet(t *testing.T) {
	// Both systems at risk for the first repair, one retired before it.
	res, err := Nonparametric(MultiSystem([]float64{10}, []float64{5, 7, 9}))
	require.NoError(t, err)
	require.InDelta(t, 0.5, res.MCF[0], 1e-15)
	require.InDelta(t, 1.0, res.MCF[1], 1e-15)

	// Retirement before the first repair: the estimate starts from the
	// reduced risk set rather than an undefined prior.
	res, err = Nonparametric(MultiSystem([]float64{3}, []float64{5, 7, 9}))
	require.NoError(t, err)
	require.InDelta(t, 1.0, res.MCF[0], 1e-15)
	require.InDelta(t, 2.0, res.MCF[1], 1e-15)
}

func TestNonparametricValidation(t *testing.T) {
	t.Run("no systems", func(t *testing.T) {
		_, err := Nonparametric(MultiSystem())
		require.ErrorIs(t, err, errs.ErrNoData)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("empty system", func(t *testing.T) {
		_, err := Nonparametric(MultiSystem([]float64{5, 9}, nil))
		require.ErrorIs(t, err, errs.ErrNoData)
	})

	t.Run("non-positive time", func(t *testing.T) {
		_, err := Nonparametric(SingleSystem(5, 0, 9))
		require.ErrorIs(t, err, errs.ErrNonPositiveTime)
	})

	t.Run("no repairs", func(t *testing.T) {
		_, err := Nonparametric(MultiSystem([]float64{5}, []float64{7}))
		require.ErrorIs(t, err, errs.ErrTooFewEvents)
	})

	t.Run("confidence level bounds", func(t *testing.T) {
		for _, ci := range []float64{0, 1, 2} {
			_, err := Nonparametric(fiveSystems(), WithConfidenceLevel(ci))
			require.ErrorIs(t, err, errs.ErrInvalidConfidence, "CI=%v", ci)
		}
	})
}

func TestNonparametricUnsortedInput(t *testing.T) {
	a, err := Nonparametric(SingleSystem(4, 7, 9, 12))
	require.NoError(t, err)
	b, err := Nonparametric(SingleSystem(12, 7, 4, 9))
	require.NoError(t, err)
	require.Equal(t, a.MCF, b.MCF)
	require.Equal(t, a.Times, b.Times)
}

func TestNonparametricTableAndFigure(t *testing.T) {
	res, err := Nonparametric(fiveSystems())
	require.NoError(t, err)

	tbl := res.Table()
	require.Len(t, tbl.Columns, 6)
	require.Len(t, tbl.Rows, 19)
	for i, row := range res.Rows {
		if row.State == StateCensored {
			assert.Equal(t, "C", tbl.Rows[i][0])
			assert.Empty(t, tbl.Rows[i][3])
		} else {
			assert.Equal(t, "F", tbl.Rows[i][0])
			assert.NotEmpty(t, tbl.Rows[i][3])
		}
	}

	fig := res.Figure()
	require.Len(t, fig.Lines, 1)
	require.Len(t, fig.Bands, 1)
	// Staircase starts at (0,0) and closes at the latest retirement.
	require.Equal(t, 0.0, fig.Lines[0].X[0])
	require.Equal(t, 0.0, fig.Lines[0].Y[0])
	require.Equal(t, 28.0, fig.Lines[0].X[len(fig.Lines[0].X)-1])
	require.Equal(t, res.MCF[len(res.MCF)-1], fig.Lines[0].Y[len(fig.Lines[0].Y)-1])
}
