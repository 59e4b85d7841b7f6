// Package model defines the core domain types shared across the application.
package model

// Client represents one row of the client roster. The roster is loaded once
// per run and never mutated; the pipeline only joins against it.
type Client struct {
	ClientCode        string
	Name              string
	Status            string
	City              string
	Age               int
	AvgMonthlyBalance float64
}
