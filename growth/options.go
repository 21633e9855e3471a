package growth

import (
	"fmt"
	"math"

	"github.com/arloliu/repairable/errs"
	"github.com/arloliu/repairable/format"
	"github.com/arloliu/repairable/internal/options"
)

// Config holds the fitting configuration.
type Config struct {
	Model      format.GrowthModel
	TargetMTBF float64
	HasTarget  bool
}

// defaultConfig returns the default configuration (Duane model, no target).
func defaultConfig() Config {
	return Config{Model: format.ModelDuane}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithModel selects the growth model to fit.
func WithModel(model format.GrowthModel) Option {
	return options.New(func(cfg *Config) error {
		if model != format.ModelDuane && model != format.ModelCrowAMSAA {
			return fmt.Errorf("%w: %v", errs.ErrUnknownModel, model)
		}
		cfg.Model = model

		return nil
	})
}

// WithModelName selects the growth model by its case-insensitive alias,
// e.g. "duane", "d", "crow-amsaa", "crow amsaa", "amsaa", "ca" or "c".
func WithModelName(name string) Option {
	return options.New(func(cfg *Config) error {
		model := format.ParseGrowthModel(name)
		if model == format.GrowthModel(0) {
			return fmt.Errorf("%w: %q", errs.ErrUnknownModel, name)
		}
		cfg.Model = model

		return nil
	})
}

// WithTargetMTBF sets the target MTBF the cumulative-MTBF model is inverted
// for. Without it, TimeToTarget is not reported.
func WithTargetMTBF(target float64) Option {
	return options.New(func(cfg *Config) error {
		if math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
			return fmt.Errorf("%w: target MTBF must be positive, got %v", errs.ErrValidation, target)
		}
		cfg.TargetMTBF = target
		cfg.HasTarget = true

		return nil
	})
}
