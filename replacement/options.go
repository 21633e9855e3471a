package replacement

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/repairable/errs"
	"github.com/arloliu/repairable/format"
	"github.com/arloliu/repairable/internal/options"
)

// Config holds the cost-model configuration.
type Config struct {
	Mode     format.RenewalMode
	UnitYear float64
	GridSize int
	Logger   *zap.Logger
}

// defaultConfig returns the default configuration: as-good-as-new renewal,
// hourly time unit (unit year of 365*24), a 10000-point grid, no logging.
func defaultConfig() Config {
	return Config{
		Mode:     format.RenewalAsGoodAsNew,
		UnitYear: 365 * 24,
		GridSize: 10000,
		Logger:   zap.NewNop(),
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithRenewalMode selects the renewal assumption: RenewalAsGoodAsNew for
// full replacement under an HPP, RenewalAsGoodAsOld for minimal repair
// under a power-law NHPP.
func WithRenewalMode(mode format.RenewalMode) Option {
	return options.New(func(cfg *Config) error {
		if mode != format.RenewalAsGoodAsNew && mode != format.RenewalAsGoodAsOld {
			return fmt.Errorf("%w: %v", errs.ErrInvalidRenewalMode, mode)
		}
		cfg.Mode = mode

		return nil
	})
}

// WithUnitYear sets the duration representing one year in the data's time
// unit, used for the yearly comparator cost. For hourly data this is
// 365*24 (the default); for daily data, 365.
func WithUnitYear(unitYear float64) Option {
	return options.New(func(cfg *Config) error {
		if math.IsNaN(unitYear) || math.IsInf(unitYear, 0) || unitYear <= 0 {
			return fmt.Errorf("%w: unit year must be positive, got %v", errs.ErrValidation, unitYear)
		}
		cfg.UnitYear = unitYear

		return nil
	})
}

// WithGridSize sets the density of the evaluation grid. A larger grid
// tightens the numeric optimum of the as-good-as-new model at CPU cost.
func WithGridSize(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 2 {
			return fmt.Errorf("%w: grid size must be at least 2, got %d", errs.ErrValidation, n)
		}
		cfg.GridSize = n

		return nil
	})
}

// WithLogger sets the logger for non-fatal advisories. The default is a
// no-op logger, keeping the library silent.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	})
}
