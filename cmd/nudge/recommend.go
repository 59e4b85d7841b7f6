package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nudge/internal/cli"
	"nudge/internal/common"
	"nudge/internal/config"
	"nudge/internal/engine"
	"nudge/internal/ingest"
	"nudge/internal/model"
	"nudge/internal/push"
	"nudge/internal/report"
	"nudge/internal/scoring"
	"nudge/internal/storage"
)

func recommendCmd() *cobra.Command {
	var (
		seed       int64
		noProgress bool
		examples   int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate product recommendations and push notifications",
		Long: `Load a data folder of CSV exports (client roster, transactions,
transfers), aggregate per-client features, rank the product catalog for each
client and write one recommendation with push text per client.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Bind here, not at construction: sibling commands share some
			// keys and the last bound flag would otherwise win for all.
			_ = viper.BindPFlag("data.dir", cmd.Flags().Lookup("data"))
			_ = viper.BindPFlag("output.path", cmd.Flags().Lookup("output"))
			_ = viper.BindPFlag("catalog.products", cmd.Flags().Lookup("products"))
			_ = viper.BindPFlag("catalog.templates", cmd.Flags().Lookup("templates"))
			_ = viper.BindPFlag("storage.db", cmd.Flags().Lookup("db"))

			dataDir := config.ExpandPath(viper.GetString("data.dir"))
			outputPath := config.ExpandPath(viper.GetString("output.path"))
			productsPath := config.ExpandPath(viper.GetString("catalog.products"))
			templatesPath := config.ExpandPath(viper.GetString("catalog.templates"))
			dbPath := config.ExpandPath(viper.GetString("storage.db"))

			// The scoring catalog has no built-in default; without it the
			// run cannot proceed.
			catalogCfg, err := scoring.LoadConfig(productsPath)
			if err != nil {
				return common.NewUserError("cannot load product catalog", err)
			}
			scorer, err := scoring.NewEngine(catalogCfg)
			if err != nil {
				return common.NewUserError("invalid product catalog", err)
			}

			templates, err := push.LoadCatalog(templatesPath)
			if err != nil {
				slog.Warn("template catalog unreadable, using built-in templates", "error", err)
				templates = push.DefaultCatalog()
			}

			var rng *rand.Rand
			if seed != 0 {
				rng = rand.New(rand.NewSource(seed))
			}
			renderer := push.NewRenderer(templates, rng)

			dataset, err := ingest.LoadDataset(dataDir)
			if err != nil {
				return common.NewUserError("cannot load input data", err)
			}

			engineCfg := engine.DefaultConfig()
			if !noProgress {
				engineCfg.Progress = os.Stderr
			}

			eng := engine.NewWithConfig(scorer, renderer, engineCfg)
			recommendations, err := eng.Run(cmd.Context(), dataset.Clients, dataset.Transactions, dataset.Transfers)
			if err != nil {
				return err
			}

			if err := report.WriteCSV(outputPath, recommendations); err != nil {
				return common.NewUserError("cannot write output", err)
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Wrote %d recommendations to %s", len(recommendations), outputPath)))

			if dbPath != "" {
				store, err := storage.NewSQLiteStore(dbPath)
				if err != nil {
					return common.NewUserError("cannot open database", err)
				}
				defer store.Close()

				runID, err := store.SaveBatch(cmd.Context(), recommendations)
				if err != nil {
					return common.NewUserError("cannot save batch to database", err)
				}
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  Saved as run %s in %s", runID, dbPath)))
			}

			printExamples(recommendations, examples)
			return nil
		},
	}

	cmd.Flags().String("data", "data", "folder with input CSV files")
	cmd.Flags().String("output", "output/recommendations.csv", "output CSV path")
	cmd.Flags().String("products", "config/products.yaml", "product catalog document")
	cmd.Flags().String("templates", "config/push_templates.yaml", "push template catalog document")
	cmd.Flags().String("db", "", "optional SQLite file to persist the batch")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible push text (0 = time-seeded)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
	cmd.Flags().IntVar(&examples, "examples", 5, "recommendations to print as examples (0 = none)")

	return cmd
}

// printExamples shows the first few generated recommendations, the quickest
// sanity check after a run.
func printExamples(recommendations []model.Recommendation, n int) {
	if n <= 0 || len(recommendations) == 0 {
		return
	}
	if n > len(recommendations) {
		n = len(recommendations)
	}

	fmt.Println(cli.TitleStyle.Render("Example recommendations"))
	for _, rec := range recommendations[:n] {
		fmt.Printf("%s  %s\n", cli.HeaderStyle.Render(rec.ClientCode), rec.Product)
		fmt.Println(cli.SubtleStyle.Render("  " + rec.Push))
	}
}
