// Package ingest loads the client roster and event files from a data
// folder.
//
// The folder layout is loose by design: the roster is whatever file is named
// clients.csv (or contains "client"), and every other CSV is sniffed by its
// header to decide whether it holds transactions (a "category" column) or
// transfers ("type" and "direction" columns). Files that fit neither shape
// are skipped with a warning. All text is UTF-8.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"nudge/internal/common"
	"nudge/internal/model"
)

// Dataset is the fully materialized input for one batch run.
type Dataset struct {
	Clients      []model.Client
	Transactions []model.Transaction
	Transfers    []model.Transfer
}

// LoadDataset reads every recognizable file in the data folder. A missing
// or empty client roster is fatal; everything else degrades to warnings.
func LoadDataset(dir string) (*Dataset, error) {
	clientsPath, err := findClientsFile(dir)
	if err != nil {
		return nil, err
	}

	clients, err := loadClients(clientsPath)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded clients", "count", len(clients), "file", filepath.Base(clientsPath))

	ds := &Dataset{Clients: clients}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data folder %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isClientsFile(name) || !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}

		path := filepath.Join(dir, name)
		kind, header, err := sniffKind(path)
		if err != nil {
			slog.Warn("skipping unreadable file", "file", name, "error", err)
			continue
		}

		switch kind {
		case kindTransactions:
			txns, err := loadTransactions(path, header)
			if err != nil {
				slog.Warn("skipping transactions file", "file", name, "error", err)
				continue
			}
			slog.Info("loaded transactions", "file", name, "count", len(txns))
			ds.Transactions = append(ds.Transactions, txns...)
		case kindTransfers:
			trs, err := loadTransfers(path, header)
			if err != nil {
				slog.Warn("skipping transfers file", "file", name, "error", err)
				continue
			}
			slog.Info("loaded transfers", "file", name, "count", len(trs))
			ds.Transfers = append(ds.Transfers, trs...)
		default:
			slog.Debug("file matches no known shape", "file", name)
		}
	}

	return ds, nil
}

type fileKind int

const (
	kindUnknown fileKind = iota
	kindTransactions
	kindTransfers
)

// findClientsFile locates the roster: clients.csv if present, otherwise the
// first file whose name contains "client".
func findClientsFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read data folder %s: %w", dir, err)
	}

	var fallback string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(name, "clients.csv") {
			return filepath.Join(dir, name), nil
		}
		if fallback == "" && strings.Contains(strings.ToLower(name), "client") {
			fallback = filepath.Join(dir, name)
		}
	}

	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("%w: no file matching *client* in %s", common.ErrClientsNotFound, dir)
}

func isClientsFile(name string) bool {
	return strings.Contains(strings.ToLower(name), "client")
}

// sniffKind reads only the header row to classify a file.
func sniffKind(path string) (fileKind, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return kindUnknown, nil, err
	}
	defer f.Close()

	record, err := csv.NewReader(f).Read()
	if err != nil {
		return kindUnknown, nil, fmt.Errorf("read header: %w", err)
	}

	header := headerIndex(record)
	if _, ok := header["category"]; ok {
		return kindTransactions, header, nil
	}
	_, hasType := header["type"]
	_, hasDirection := header["direction"]
	if hasType && hasDirection {
		return kindTransfers, header, nil
	}
	return kindUnknown, header, nil
}

// headerIndex maps lowercased column names to their positions. A UTF-8 BOM
// on the first column is stripped.
func headerIndex(record []string) map[string]int {
	header := make(map[string]int, len(record))
	for i, col := range record {
		col = strings.TrimPrefix(strings.TrimSpace(col), "\uFEFF")
		header[strings.ToLower(col)] = i
	}
	return header
}

func loadClients(path string) ([]model.Client, error) {
	rows, header, err := readAll(path)
	if err != nil {
		return nil, err
	}

	codeIdx, ok := header["client_code"]
	if !ok {
		return nil, fmt.Errorf("%w: client_code in %s", common.ErrMissingColumn, path)
	}
	nameIdx, ok := header["name"]
	if !ok {
		return nil, fmt.Errorf("%w: name in %s", common.ErrMissingColumn, path)
	}

	clients := make([]model.Client, 0, len(rows))
	seen := make(map[string]bool)
	for _, row := range rows {
		code := field(row, codeIdx)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true

		clients = append(clients, model.Client{
			ClientCode:        code,
			Name:              field(row, nameIdx),
			Status:            field(row, col(header, "status")),
			City:              field(row, col(header, "city")),
			Age:               parseInt(field(row, col(header, "age"))),
			AvgMonthlyBalance: balanceOf(row, header),
		})
	}

	if len(clients) == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrEmptyRoster, path)
	}
	return clients, nil
}

// balanceOf reads the average monthly balance under either of its known
// column names.
func balanceOf(row []string, header map[string]int) float64 {
	for _, col := range []string{"avg_monthly_balance_kzt", "avg_monthly_balance"} {
		if idx, ok := header[col]; ok {
			return parseFloat(field(row, idx))
		}
	}
	return 0
}

func loadTransactions(path string, header map[string]int) ([]model.Transaction, error) {
	rows, _, err := readAll(path)
	if err != nil {
		return nil, err
	}

	txns := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		txns = append(txns, model.Transaction{
			ClientCode: field(row, col(header, "client_code")),
			Date:       field(row, col(header, "date")),
			Category:   field(row, col(header, "category")),
			Currency:   field(row, col(header, "currency")),
			Amount:     parseFloat(field(row, col(header, "amount"))),
		})
	}
	return txns, nil
}

func loadTransfers(path string, header map[string]int) ([]model.Transfer, error) {
	rows, _, err := readAll(path)
	if err != nil {
		return nil, err
	}

	transfers := make([]model.Transfer, 0, len(rows))
	for _, row := range rows {
		transfers = append(transfers, model.Transfer{
			ClientCode: field(row, col(header, "client_code")),
			Date:       field(row, col(header, "date")),
			Type:       field(row, col(header, "type")),
			Direction:  field(row, col(header, "direction")),
			Currency:   field(row, col(header, "currency")),
			Amount:     parseFloat(field(row, col(header, "amount"))),
		})
	}
	return transfers, nil
}

// readAll reads a CSV file into data rows plus a header index. Rows with
// the wrong field count are skipped rather than failing the file.
func readAll(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headerRow, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	header := headerIndex(headerRow)

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Debug("skipping malformed row", "file", filepath.Base(path), "error", err)
			continue
		}
		rows = append(rows, row)
	}

	return rows, header, nil
}

// col returns a column's position, or -1 when the header lacks it.
func col(header map[string]int, name string) int {
	if idx, ok := header[name]; ok {
		return idx
	}
	return -1
}

// field returns a trimmed cell value; out-of-range indexes (short rows,
// absent optional columns) read as empty.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
