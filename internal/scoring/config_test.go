package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nudge/internal/common"
	"nudge/internal/model"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeCatalog(t, `
products:
  "Карта для путешествий":
    min_threshold: 25000
  "Премиальная карта":
    min_balance: 400000
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.InDelta(t, 25000, cfg.Products[ProductTravelCard]["min_threshold"], 1e-9)
	assert.InDelta(t, 400000, cfg.Products[ProductPremiumCard]["min_balance"], 1e-9)
}

func TestLoadConfig_MissingFileIsFatal(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestLoadConfig_Unparseable(t *testing.T) {
	path := writeCatalog(t, "products: [not: a, mapping")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoadConfig_EmptyCatalog(t *testing.T) {
	path := writeCatalog(t, "products: {}")
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestParamsValue(t *testing.T) {
	p := Params{"min_balance": 123}
	assert.InDelta(t, 123, p.value("min_balance", 500000), 1e-9)
	assert.InDelta(t, 500000, p.value("missing", 500000), 1e-9)

	var nilParams Params
	assert.InDelta(t, 30000, nilParams.value("min_threshold", 30000), 1e-9)
}

func TestCustomThresholdChangesRule(t *testing.T) {
	e, err := NewEngine(Config{Products: map[string]Params{
		ProductTravelCard: {"min_threshold": 10000},
	}})
	require.NoError(t, err)

	f := &model.ClientFeatures{CategorySpending: map[string]float64{"taxi": 15000}}
	assert.InDelta(t, 600, scoreOf(e, f, ProductTravelCard), 1e-9)
}
