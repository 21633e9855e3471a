package rocof

import (
	"fmt"
	"math"

	"github.com/arloliu/repairable/errs"
	"github.com/arloliu/repairable/internal/options"
)

// Config holds the Laplace test configuration.
type Config struct {
	CI         float64
	TestEnd    float64
	HasTestEnd bool
}

// defaultConfig returns the default configuration (95% confidence,
// failure-terminated test).
func defaultConfig() Config {
	return Config{CI: 0.95}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithConfidenceLevel sets the confidence level of the Laplace test.
// The level must lie strictly within (0,1).
func WithConfidenceLevel(ci float64) Option {
	return options.New(func(cfg *Config) error {
		if math.IsNaN(ci) || ci <= 0 || ci >= 1 {
			return fmt.Errorf("%w: got %v", errs.ErrInvalidConfidence, ci)
		}
		cfg.CI = ci

		return nil
	})
}

// WithTestEnd sets the end of the observation window for a test that was
// not failure terminated. It must not precede the final failure time.
func WithTestEnd(end float64) Option {
	return options.New(func(cfg *Config) error {
		if math.IsNaN(end) || math.IsInf(end, 0) || end <= 0 {
			return fmt.Errorf("%w: test end must be positive, got %v", errs.ErrValidation, end)
		}
		cfg.TestEnd = end
		cfg.HasTestEnd = true

		return nil
	})
}
