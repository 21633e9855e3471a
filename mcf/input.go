package mcf

import (
	"fmt"
	"math"

	"github.com/arloliu/repairable/errs"
	"github.com/arloliu/repairable/internal/options"
)

// Input carries the repair histories the MCF estimators run on. It is the
// explicit input variant resolved once at the boundary: construct it with
// SingleSystem for one flat history or MultiSystem for several, so flat and
// nested data can never be mixed.
//
// Within each system the largest time is the retirement (right-censoring)
// time and every other value is a repair event. A system retired
// immediately after its last repair repeats the terminal value, e.g.
// SingleSystem(4, 7, 9, 9).
type Input struct {
	systems [][]float64
}

// SingleSystem wraps the repair history of one system.
func SingleSystem(times ...float64) Input {
	return Input{systems: [][]float64{times}}
}

// MultiSystem wraps the repair histories of several systems.
func MultiSystem(systems ...[]float64) Input {
	return Input{systems: systems}
}

// validate checks the input and returns sorted per-system copies.
func (in Input) validate() ([][]float64, error) {
	if len(in.systems) == 0 {
		return nil, fmt.Errorf("%w: at least one system is required", errs.ErrNoData)
	}

	sorted := make([][]float64, len(in.systems))
	for i, system := range in.systems {
		if len(system) == 0 {
			return nil, fmt.Errorf("%w: system %d has no events", errs.ErrNoData, i)
		}
		for _, t := range system {
			if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
				return nil, fmt.Errorf("%w: system %d contains %v", errs.ErrNonPositiveTime, i, t)
			}
		}
		cp := make([]float64, len(system))
		copy(cp, system)
		sortFloats(cp)
		sorted[i] = cp
	}

	return sorted, nil
}

// Config holds the estimator configuration.
type Config struct {
	CI float64
}

// defaultConfig returns the default configuration (95% confidence).
func defaultConfig() Config {
	return Config{CI: 0.95}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithConfidenceLevel sets the confidence level of the MCF bounds. The
// level must lie strictly within (0,1): nonparametric bounds are one-sided,
// parametric parameter bounds are two-sided.
func WithConfidenceLevel(ci float64) Option {
	return options.New(func(cfg *Config) error {
		if math.IsNaN(ci) || ci <= 0 || ci >= 1 {
			return fmt.Errorf("%w: got %v", errs.ErrInvalidConfidence, ci)
		}
		cfg.CI = ci

		return nil
	})
}
