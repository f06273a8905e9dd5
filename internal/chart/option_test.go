package chart

import (
	"encoding/json"
	"testing"

	"github.com/newthinker/quanthub/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_DefaultCatalog(t *testing.T) {
	opt, err := Build(catalog.Default().Chart())
	require.NoError(t, err)

	assert.Equal(t, "axis", opt.Tooltip.Trigger)
	assert.Equal(t, "category", opt.XAxis.Type)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, opt.XAxis.Data)
	assert.Equal(t, []string{"Strategy", "Benchmark"}, opt.Legend.Data)

	require.Len(t, opt.Series, 2)

	strategy := opt.Series[0]
	assert.Equal(t, "line", strategy.Type)
	assert.True(t, strategy.Smooth)
	assert.Equal(t, primaryColor, strategy.ItemStyle.Color)
	require.NotNil(t, strategy.AreaStyle)
	assert.Nil(t, strategy.LineStyle)

	benchmark := opt.Series[1]
	assert.Equal(t, benchmarkColor, benchmark.ItemStyle.Color)
	require.NotNil(t, benchmark.LineStyle)
	assert.Equal(t, "dashed", benchmark.LineStyle.Type)
	assert.Nil(t, benchmark.AreaStyle)
}

func TestBuild_LengthMismatch(t *testing.T) {
	_, err := Build(catalog.ChartSeries{
		Categories: []string{"Mon"},
		Series:     []catalog.Series{{Name: "Strategy", Data: []float64{1, 2}}},
	})
	assert.Error(t, err)
}

func TestOption_JSON(t *testing.T) {
	opt, err := Build(catalog.Default().Chart())
	require.NoError(t, err)

	raw, err := opt.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))

	series := decoded["series"].([]any)
	first := series[0].(map[string]any)
	assert.Equal(t, "Strategy", first["name"])
	assert.Equal(t, []any{1000.0, 1120.0, 1080.0, 1350.0, 1400.0, 1550.0, 1680.0}, first["data"])

	second := series[1].(map[string]any)
	_, hasArea := second["areaStyle"]
	assert.False(t, hasArea)
}
