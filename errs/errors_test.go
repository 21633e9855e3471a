package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationTaxonomy(t *testing.T) {
	for _, err := range []error{
		ErrNoData,
		ErrNonPositiveTime,
		ErrInvalidConfidence,
		ErrTestEndTooEarly,
		ErrRetireBeforeRepair,
		ErrCostOrder,
		ErrNonPositiveScale,
		ErrTooFewEvents,
	} {
		require.ErrorIs(t, err, ErrValidation, "%v", err)
		require.NotErrorIs(t, err, ErrConfiguration, "%v", err)
	}
}

func TestConfigurationTaxonomy(t *testing.T) {
	for _, err := range []error{
		ErrUnknownModel,
		ErrInvalidRenewalMode,
		ErrConflictingInput,
	} {
		require.ErrorIs(t, err, ErrConfiguration, "%v", err)
		require.NotErrorIs(t, err, ErrValidation, "%v", err)
	}
}

func TestWrappedDetailKeepsBothLevels(t *testing.T) {
	err := fmt.Errorf("%w: got 1.5", ErrInvalidConfidence)
	require.ErrorIs(t, err, ErrInvalidConfidence)
	require.ErrorIs(t, err, ErrValidation)
	require.False(t, errors.Is(err, ErrConfiguration))
}
