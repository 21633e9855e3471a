// Package errs defines the sentinel errors shared by the analysis packages.
//
// Errors form a two-level taxonomy. The roots classify a failure:
//
//   - ErrValidation: the input data is malformed or out of the model's
//     domain (non-positive times, a confidence level outside (0,1), a
//     retirement time before the last repair, ...).
//   - ErrConfiguration: a recognized option carries an unrecognized value
//     (unknown growth model, unknown renewal mode, conflicting
//     mutually-exclusive inputs).
//
// Specific sentinels are statically wrapped onto their root, so callers can
// match either level:
//
//	if errors.Is(err, errs.ErrInvalidConfidence) { ... } // exact condition
//	if errors.Is(err, errs.ErrValidation) { ... }        // whole category
//
// All errors are raised immediately and never recovered internally; every
// computation is deterministic, so no retry layer exists.
package errs

import (
	"errors"
	"fmt"
)

// Taxonomy roots.
var (
	// ErrValidation classifies malformed or out-of-domain input data.
	ErrValidation = errors.New("validation")
	// ErrConfiguration classifies unrecognized option values.
	ErrConfiguration = errors.New("configuration")
)

// Validation sentinels.
var (
	// ErrNoData indicates an empty input sequence where at least one value is required.
	ErrNoData = fmt.Errorf("%w: no data", ErrValidation)
	// ErrNonPositiveTime indicates a zero, negative, NaN or infinite time value.
	ErrNonPositiveTime = fmt.Errorf("%w: times must be positive finite values", ErrValidation)
	// ErrInvalidConfidence indicates a confidence level outside the open interval (0,1).
	ErrInvalidConfidence = fmt.Errorf("%w: confidence level must be within (0,1) exclusive", ErrValidation)
	// ErrTestEndTooEarly indicates a test-end override earlier than the last observed failure.
	ErrTestEndTooEarly = fmt.Errorf("%w: test end cannot precede the final failure time", ErrValidation)
	// ErrRetireBeforeRepair indicates a retirement time earlier than the last recorded repair.
	ErrRetireBeforeRepair = fmt.Errorf("%w: final retirement time cannot precede the final repair time", ErrValidation)
	// ErrCostOrder indicates preventive maintenance priced at or above corrective maintenance.
	ErrCostOrder = fmt.Errorf("%w: preventive cost must be less than corrective cost", ErrValidation)
	// ErrNonPositiveScale indicates a non-positive Weibull scale or shape parameter.
	ErrNonPositiveScale = fmt.Errorf("%w: distribution parameters must be positive", ErrValidation)
	// ErrTooFewEvents indicates a sequence too short for the requested statistic.
	ErrTooFewEvents = fmt.Errorf("%w: not enough events", ErrValidation)
)

// Configuration sentinels.
var (
	// ErrUnknownModel indicates an unrecognized growth model selector.
	ErrUnknownModel = fmt.Errorf("%w: unknown growth model", ErrConfiguration)
	// ErrInvalidRenewalMode indicates a renewal mode outside the two supported assumptions.
	ErrInvalidRenewalMode = fmt.Errorf("%w: renewal mode must be as-good-as-new or as-good-as-old", ErrConfiguration)
	// ErrConflictingInput indicates mutually-exclusive inputs that were both (or neither) supplied.
	ErrConflictingInput = fmt.Errorf("%w: exactly one input form must be supplied", ErrConfiguration)
)
