// Package engine orchestrates one recommendation batch: aggregate features,
// score the catalog per client, render the push text.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"nudge/internal/features"
	"nudge/internal/model"
	"nudge/internal/scoring"
)

// Scorer ranks catalog products for one client's feature row.
type Scorer interface {
	TopN(f *model.ClientFeatures, n int) []string
}

// Renderer produces the push notification text for a chosen product.
type Renderer interface {
	Render(product string, f *model.ClientFeatures, client model.Client) string
}

// Config holds configuration options for the recommendation engine.
type Config struct {
	// Progress, when non-nil, receives a progress bar over the client loop.
	Progress io.Writer
	// TopN is how many candidate products are ranked per client.
	TopN int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{TopN: 4}
}

// RecommendationEngine runs the batch pipeline over a materialized dataset.
type RecommendationEngine struct {
	scorer   Scorer
	renderer Renderer
	config   Config
}

// New creates a recommendation engine with default configuration.
func New(scorer Scorer, renderer Renderer) *RecommendationEngine {
	return NewWithConfig(scorer, renderer, DefaultConfig())
}

// NewWithConfig creates a recommendation engine with custom configuration.
func NewWithConfig(scorer Scorer, renderer Renderer, config Config) *RecommendationEngine {
	if config.TopN <= 0 {
		config.TopN = DefaultConfig().TopN
	}
	return &RecommendationEngine{
		scorer:   scorer,
		renderer: renderer,
		config:   config,
	}
}

// Run produces exactly one recommendation per roster client, in roster
// order. A client whose data is anomalous gets the default product and a
// fallback push; no single client aborts the batch.
func (e *RecommendationEngine) Run(ctx context.Context, clients []model.Client, transactions []model.Transaction, transfers []model.Transfer) ([]model.Recommendation, error) {
	slog.Info("starting recommendation batch",
		"clients", len(clients),
		"transactions", len(transactions),
		"transfers", len(transfers))

	rows := features.Aggregate(clients, transactions, transfers)
	byCode := make(map[string]*model.ClientFeatures, len(rows))
	for i := range rows {
		byCode[rows[i].ClientCode] = &rows[i]
	}

	bar := e.newProgressBar(len(clients))

	recommendations := make([]model.Recommendation, 0, len(clients))
	for _, client := range clients {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch interrupted: %w", err)
		}

		row := byCode[client.ClientCode]
		product := scoring.DefaultProduct
		if row == nil {
			slog.Warn("no feature row for client, using default product", "client_code", client.ClientCode)
		} else if top := e.scorer.TopN(row, e.config.TopN); len(top) > 0 {
			product = top[0]
		}

		recommendations = append(recommendations, model.Recommendation{
			ClientCode: client.ClientCode,
			Product:    product,
			Push:       e.renderer.Render(product, row, client),
		})

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Debug("progress bar update failed", "error", err)
			}
		}
	}

	slog.Info("recommendation batch complete", "recommendations", len(recommendations))
	return recommendations, nil
}

func (e *RecommendationEngine) newProgressBar(total int) *progressbar.ProgressBar {
	if e.config.Progress == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(e.config.Progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Generating recommendations...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(e.config.Progress); err != nil {
				slog.Debug("progress bar writer failed", "error", err)
			}
		}),
	)
}
