package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGrowthModel(t *testing.T) {
	tests := []struct {
		name  string
		alias string
		want  GrowthModel
	}{
		{"duane full", "Duane", ModelDuane},
		{"duane short", "d", ModelDuane},
		{"crow-amsaa hyphen", "Crow-AMSAA", ModelCrowAMSAA},
		{"crow amsaa space", "crow amsaa", ModelCrowAMSAA},
		{"crowamsaa joined", "CROWAMSAA", ModelCrowAMSAA},
		{"crow", "crow", ModelCrowAMSAA},
		{"amsaa", "AMSAA", ModelCrowAMSAA},
		{"ca", "ca", ModelCrowAMSAA},
		{"c", "C", ModelCrowAMSAA},
		{"padded", "  duane  ", ModelDuane},
		{"unknown", "weibull", GrowthModel(0)},
		{"empty", "", GrowthModel(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseGrowthModel(tt.alias))
		})
	}
}

func TestStringers(t *testing.T) {
	require.Equal(t, "Duane", ModelDuane.String())
	require.Equal(t, "Crow-AMSAA", ModelCrowAMSAA.String())
	require.Equal(t, "Unknown", GrowthModel(0xff).String())

	require.Equal(t, "as good as new", RenewalAsGoodAsNew.String())
	require.Equal(t, "as good as old", RenewalAsGoodAsOld.String())
	require.Equal(t, "Unknown", RenewalMode(0xff).String())

	require.Equal(t, "improving", TrendImproving.String())
	require.Equal(t, "constant", TrendConstant.String())
	require.Equal(t, "worsening", TrendWorsening.String())
	require.Equal(t, "Unknown", Trend(0xff).String())
}
