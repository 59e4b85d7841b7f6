package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nudge/internal/cli"
	"nudge/internal/config"
	"nudge/internal/ingest"
)

func inspectCmd() *cobra.Command {
	var previewRows int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect the data folder",
		Long:  `Report the columns, row counts and a preview of every file in the data folder, to check exports before running a batch.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = viper.BindPFlag("data.dir", cmd.Flags().Lookup("data"))

			dataDir := config.ExpandPath(viper.GetString("data.dir"))

			reports, err := ingest.InspectFolder(dataDir, previewRows)
			if err != nil {
				return fmt.Errorf("cannot inspect %s: %w", dataDir, err)
			}
			if len(reports) == 0 {
				fmt.Println(cli.WarningStyle.Render("No files found in " + dataDir))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Files in " + dataDir))
			for _, r := range reports {
				if r.Err != nil {
					fmt.Printf("%s  %s\n", cli.ErrorStyle.Render(r.Name), cli.SubtleStyle.Render(r.Err.Error()))
					continue
				}

				fmt.Printf("%s  %s\n",
					cli.HeaderStyle.Render(r.Name),
					cli.SubtleStyle.Render(fmt.Sprintf("%d rows, %d columns", r.Rows, len(r.Columns))))

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintf(w, "  %s\n", strings.Join(r.Columns, "\t"))
				for _, row := range r.Preview {
					fmt.Fprintf(w, "  %s\n", strings.Join(row, "\t"))
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().String("data", "data", "folder with input CSV files")
	cmd.Flags().IntVar(&previewRows, "rows", 3, "preview rows per file")

	return cmd
}
