package cryptofolio

import "time"

// TimeLayout is the layout of timestamps in the history log.
const TimeLayout = "2006-01-02 15:04:05"

// Record is one asset valuation at one instant.
//
// Records produced by the same aggregation share the same Time, they form a batch.
type Record struct {
	Time  time.Time
	Asset string
	Value float64 // USD
}

// Latest is the most recent value known for an asset.
type Latest struct {
	Time  time.Time
	Value float64
}

// Total is the portfolio value of one batch.
type Total struct {
	Time  time.Time
	Value float64
}
