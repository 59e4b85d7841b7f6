package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nudge/internal/common"
)

// Params holds the named threshold parameters for one product's rule.
// Parameters missing from the catalog document fall back to the rule's
// built-in default.
type Params map[string]float64

func (p Params) value(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Config is the product catalog document. Product names are the exact
// display names used in the output, so keys are matched case-sensitively.
type Config struct {
	Products map[string]Params `yaml:"products"`
}

// LoadConfig reads the product catalog from a YAML document. The scoring
// catalog has no built-in fallback: a missing or unparseable document is a
// fatal error for the run.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: product catalog %s: %v", common.ErrMissingConfig, path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: product catalog %s: %v", common.ErrInvalidConfig, path, err)
	}
	if len(cfg.Products) == 0 {
		return Config{}, fmt.Errorf("%w: product catalog %s has no products", common.ErrInvalidConfig, path)
	}

	return cfg, nil
}
