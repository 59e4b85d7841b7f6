// Package report writes the final recommendation table.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"nudge/internal/model"
)

var header = []string{"client_code", "product", "push_notification"}

// WriteCSV writes one row per recommendation to a UTF-8 CSV file, creating
// the parent directory when needed.
func WriteCSV(path string, recommendations []model.Recommendation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range recommendations {
		if err := w.Write([]string{rec.ClientCode, rec.Product, rec.Push}); err != nil {
			return fmt.Errorf("write recommendation for %s: %w", rec.ClientCode, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return f.Close()
}
