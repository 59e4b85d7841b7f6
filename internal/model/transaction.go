package model

// Transaction represents a single spend event for a client.
//
// Date is kept as the raw string from the source file: the aggregator owns
// date parsing and silently drops records whose date cannot be parsed, so
// the loader never rejects a row for a bad timestamp.
type Transaction struct {
	ClientCode string
	Date       string
	Category   string // Raw source label, e.g. "Продукты питания"
	Currency   string
	Amount     float64
}

// Transfer represents a single money-movement event for a client.
type Transfer struct {
	ClientCode string
	Date       string
	Type       string // Raw type code, e.g. "salary_in"
	Direction  string // "in" or "out"
	Currency   string
	Amount     float64
}
