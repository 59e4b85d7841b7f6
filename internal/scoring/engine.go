// Package scoring evaluates the fixed product catalog against client
// feature rows and ranks products by estimated benefit.
//
// Each product carries one pure scoring rule registered at startup, keyed by
// product identity. Adding a product means adding a catalog entry and a
// handler, not editing a branching monolith.
package scoring

import (
	"fmt"
	"sort"

	"nudge/internal/model"
)

type product struct {
	name   string
	params Params
	rule   RuleFunc
}

// Engine scores clients against the product catalog. Read-only after
// construction.
type Engine struct {
	catalog []product
}

// NewEngine builds the scoring catalog from the loaded configuration,
// pairing each known product with its rule. Products in the configuration
// without a registered rule are rejected rather than silently ignored.
func NewEngine(cfg Config) (*Engine, error) {
	for name := range cfg.Products {
		if _, ok := rules[name]; !ok {
			return nil, fmt.Errorf("no scoring rule registered for product %q", name)
		}
	}

	catalog := make([]product, 0, len(catalogOrder))
	for _, name := range catalogOrder {
		catalog = append(catalog, product{
			name:   name,
			params: cfg.Products[name],
			rule:   rules[name],
		})
	}

	return &Engine{catalog: catalog}, nil
}

// Score evaluates every product rule against the feature row and returns
// the full catalog sorted by score descending. Scores never go below zero;
// equal scores keep catalog order.
func (e *Engine) Score(f *model.ClientFeatures) []model.ProductScore {
	scores := make([]model.ProductScore, 0, len(e.catalog))
	for _, p := range e.catalog {
		s := p.rule(f, p.params)
		if s < 0 {
			s = 0
		}
		scores = append(scores, model.ProductScore{Product: p.name, Score: s})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}

// TopN returns the names of up to n products with a positive score, best
// first. An empty result means no product fits; substituting a default is
// the caller's concern.
func (e *Engine) TopN(f *model.ClientFeatures, n int) []string {
	var names []string
	for _, ps := range e.Score(f) {
		if ps.Score <= 0 {
			break
		}
		names = append(names, ps.Product)
		if len(names) == n {
			break
		}
	}
	return names
}
