package model

// ProductScore pairs a product name with its non-negative suitability score
// for one client. Intermediate value, never persisted.
type ProductScore struct {
	Product string
	Score   float64
}

// Recommendation is the final output record for one client.
type Recommendation struct {
	ClientCode string
	Product    string
	Push       string
}
