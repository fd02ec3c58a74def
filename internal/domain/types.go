// Package domain defines the market-data types shared by the storage and
// gathering layers.
package domain

import "time"

// Bar is one OHLCV observation for a symbol, typically a daily aggregate.
type Bar struct {
	Symbol     string
	Timestamp  time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     int64
	TradeCount int64
	VWAP       float64
}

// CloseCents returns the closing price in integer cents. The simulation core
// runs on whole currency units, so stored bars are converted at the boundary.
func (b Bar) CloseCents() int64 {
	return int64(b.Close*100 + 0.5)
}
