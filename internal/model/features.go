package model

import "time"

// UnknownCategory is the sentinel used for textual features when a client
// has no activity to derive them from.
const UnknownCategory = "Unknown"

// ClientFeatures is the aggregated view of one client's financial activity.
// Exactly one row exists per roster client, even for clients with no
// transactions or transfers; numeric gaps are 0 and textual gaps are the
// UnknownCategory sentinel. Built fresh each run, immutable afterwards.
type ClientFeatures struct {
	ClientCode        string
	Name              string
	AvgMonthlyBalance float64

	// Transaction-derived features. CategorySpending is keyed by canonical
	// category tag and holds the summed amount per tag; it is nil for a
	// client with no parseable transactions, so lookups still read as 0.
	HasTransactions    bool
	TotalSpent         float64
	AvgTransaction     float64
	TransactionCount   int
	MostCommonCategory string // Raw source label, mode with first-seen tie-break
	CategorySpending   map[string]float64

	// Transfer-derived features. TransferVolumes is keyed by canonical
	// transfer type tag; nil for a client with no parseable transfers.
	HasTransfers    bool
	TotalTransfers  float64
	AvgTransfer     float64
	IncomeRatio     float64 // Fraction of transfer events with direction "in"; 0 with no transfers
	TransferVolumes map[string]float64

	// Calendar month of the client's latest parseable event, kept for
	// month-aware notification text. Zero when the client has no activity.
	LastActivityMonth time.Month
}

// Spending returns the summed spend for a canonical category tag, 0 when the
// client has none.
func (f *ClientFeatures) Spending(tag string) float64 {
	return f.CategorySpending[tag]
}

// TransferVolume returns the summed transfer amount for a canonical type
// tag, 0 when the client has none.
func (f *ClientFeatures) TransferVolume(tag string) float64 {
	return f.TransferVolumes[tag]
}
