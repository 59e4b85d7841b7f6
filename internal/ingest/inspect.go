package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// FileReport describes one file in the data folder for the inspect command.
type FileReport struct {
	Name    string
	Columns []string
	Rows    int
	Preview [][]string
	Err     error
}

// InspectFolder reads every file in the data folder and reports its shape:
// column names, row count and a small preview. Unreadable files get their
// error recorded instead of aborting the scan.
func InspectFolder(dir string, previewRows int) ([]FileReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var reports []FileReport
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		reports = append(reports, inspectFile(filepath.Join(dir, entry.Name()), previewRows))
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Name < reports[j].Name })
	return reports, nil
}

func inspectFile(path string, previewRows int) FileReport {
	report := FileReport{Name: filepath.Base(path)}

	f, err := os.Open(path)
	if err != nil {
		report.Err = err
		return report
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		report.Err = err
		return report
	}
	report.Columns = header

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(report.Preview) < previewRows {
			report.Preview = append(report.Preview, row)
		}
		report.Rows++
	}

	return report
}
