// Package features builds the per-client feature rows consumed by the
// product scoring engine.
//
// Aggregation mirrors a batch report: events are grouped by client code,
// summary statistics and per-category sums are computed, and the result is
// left-joined onto the full client roster so every client gets exactly one
// row. Records with unparseable dates are dropped, never fatal.
package features

import (
	"log/slog"
	"strings"
	"time"

	"nudge/internal/category"
	"nudge/internal/model"
)

// dateLayouts are tried in order when parsing event timestamps.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02.01.2006",
	"2006/01/02",
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// transactionStats accumulates transaction-derived features for one client.
type transactionStats struct {
	sum           float64
	count         int
	perTag        map[string]float64
	categoryCount map[string]int
	categoryFirst map[string]int // first-occurrence index, for mode tie-breaks
	lastDate      time.Time
}

// transferStats accumulates transfer-derived features for one client.
type transferStats struct {
	sum      float64
	count    int
	inCount  int
	perTag   map[string]float64
	lastDate time.Time
}

// Aggregate converts raw events into one ClientFeatures row per roster
// client, in roster order. Empty transaction or transfer inputs are valid
// and simply leave their derived features zero-valued.
func Aggregate(clients []model.Client, transactions []model.Transaction, transfers []model.Transfer) []model.ClientFeatures {
	txStats, txDropped := aggregateTransactions(transactions)
	trStats, trDropped := aggregateTransfers(transfers)

	if txDropped > 0 || trDropped > 0 {
		slog.Debug("dropped events with unparseable dates",
			"transactions", txDropped,
			"transfers", trDropped)
	}

	rows := make([]model.ClientFeatures, 0, len(clients))
	for _, c := range clients {
		row := model.ClientFeatures{
			ClientCode:         c.ClientCode,
			Name:               c.Name,
			AvgMonthlyBalance:  c.AvgMonthlyBalance,
			MostCommonCategory: model.UnknownCategory,
		}

		var lastActivity time.Time

		if st, ok := txStats[c.ClientCode]; ok {
			row.HasTransactions = true
			row.TotalSpent = st.sum
			row.AvgTransaction = st.sum / float64(st.count)
			row.TransactionCount = st.count
			row.MostCommonCategory = st.mode()
			row.CategorySpending = st.perTag
			lastActivity = st.lastDate
		}

		if st, ok := trStats[c.ClientCode]; ok {
			row.HasTransfers = true
			row.TotalTransfers = st.sum
			row.AvgTransfer = st.sum / float64(st.count)
			row.IncomeRatio = float64(st.inCount) / float64(st.count)
			row.TransferVolumes = st.perTag
			if st.lastDate.After(lastActivity) {
				lastActivity = st.lastDate
			}
		}

		if !lastActivity.IsZero() {
			row.LastActivityMonth = lastActivity.Month()
		}

		rows = append(rows, row)
	}

	return rows
}

func aggregateTransactions(transactions []model.Transaction) (map[string]*transactionStats, int) {
	stats := make(map[string]*transactionStats)
	dropped := 0

	for _, tx := range transactions {
		date, ok := parseDate(tx.Date)
		if !ok {
			dropped++
			continue
		}

		st := stats[tx.ClientCode]
		if st == nil {
			st = &transactionStats{
				perTag:        make(map[string]float64),
				categoryCount: make(map[string]int),
				categoryFirst: make(map[string]int),
			}
			stats[tx.ClientCode] = st
		}

		st.sum += tx.Amount
		if _, seen := st.categoryCount[tx.Category]; !seen {
			st.categoryFirst[tx.Category] = st.count
		}
		st.count++
		st.categoryCount[tx.Category]++
		st.perTag[category.Normalize(tx.Category)] += tx.Amount
		if date.After(st.lastDate) {
			st.lastDate = date
		}
	}

	return stats, dropped
}

func aggregateTransfers(transfers []model.Transfer) (map[string]*transferStats, int) {
	stats := make(map[string]*transferStats)
	dropped := 0

	for _, tr := range transfers {
		date, ok := parseDate(tr.Date)
		if !ok {
			dropped++
			continue
		}

		st := stats[tr.ClientCode]
		if st == nil {
			st = &transferStats{perTag: make(map[string]float64)}
			stats[tr.ClientCode] = st
		}

		st.sum += tr.Amount
		st.count++
		if tr.Direction == "in" {
			st.inCount++
		}
		st.perTag[category.NormalizeTransfer(tr.Type)] += tr.Amount
		if date.After(st.lastDate) {
			st.lastDate = date
		}
	}

	return stats, dropped
}

// mode returns the most frequent raw category label, breaking ties by first
// occurrence in event order.
func (st *transactionStats) mode() string {
	best := model.UnknownCategory
	bestCount := 0
	bestFirst := 0

	for label, count := range st.categoryCount {
		first := st.categoryFirst[label]
		if count > bestCount || (count == bestCount && first < bestFirst) {
			best = label
			bestCount = count
			bestFirst = first
		}
	}

	return best
}
