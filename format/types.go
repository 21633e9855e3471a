// Package format defines the shared enumerated selectors used across the
// analysis packages: growth model, renewal assumption and trend labels.
package format

import "strings"

type (
	GrowthModel uint8
	RenewalMode uint8
	Trend       uint8
)

const (
	// ModelDuane selects the Duane log-linear reliability growth model.
	ModelDuane GrowthModel = 0x1
	// ModelCrowAMSAA selects the Crow-AMSAA power-law reliability growth model.
	ModelCrowAMSAA GrowthModel = 0x2

	// RenewalAsGoodAsNew models replacement as a full renewal (HPP).
	RenewalAsGoodAsNew RenewalMode = 0x1
	// RenewalAsGoodAsOld models minimal repair under a power-law NHPP.
	RenewalAsGoodAsOld RenewalMode = 0x2

	// TrendImproving indicates the failure rate is decreasing over time.
	TrendImproving Trend = 0x1
	// TrendConstant indicates no statistically significant trend.
	TrendConstant Trend = 0x2
	// TrendWorsening indicates the failure rate is increasing over time.
	TrendWorsening Trend = 0x3
)

func (m GrowthModel) String() string {
	switch m {
	case ModelDuane:
		return "Duane"
	case ModelCrowAMSAA:
		return "Crow-AMSAA"
	default:
		return "Unknown"
	}
}

func (r RenewalMode) String() string {
	switch r {
	case RenewalAsGoodAsNew:
		return "as good as new"
	case RenewalAsGoodAsOld:
		return "as good as old"
	default:
		return "Unknown"
	}
}

func (t Trend) String() string {
	switch t {
	case TrendImproving:
		return "improving"
	case TrendConstant:
		return "constant"
	case TrendWorsening:
		return "worsening"
	default:
		return "Unknown"
	}
}

// growthModelAliases maps the accepted case-insensitive spellings to models.
var growthModelAliases = map[string]GrowthModel{
	"duane":      ModelDuane,
	"d":          ModelDuane,
	"crow amsaa": ModelCrowAMSAA,
	"crow-amsaa": ModelCrowAMSAA,
	"crowamsaa":  ModelCrowAMSAA,
	"crow":       ModelCrowAMSAA,
	"amsaa":      ModelCrowAMSAA,
	"ca":         ModelCrowAMSAA,
	"c":          ModelCrowAMSAA,
}

// ParseGrowthModel returns the GrowthModel for a given alias.
// Returns GrowthModel(0) for unknown aliases.
func ParseGrowthModel(name string) GrowthModel {
	if model, exists := growthModelAliases[strings.ToLower(strings.TrimSpace(name))]; exists {
		return model
	}

	return GrowthModel(0)
}
