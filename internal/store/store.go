// Package store persists and retrieves the historical bar data that feeds
// the backtester. Backtest results are never stored; data flows in only.
package store

import (
	"context"
	"time"

	"habitlab/internal/domain"
)

// BarStore persists and retrieves daily OHLCV bar data.
type BarStore interface {
	// WriteBars persists a batch of bars to storage.
	WriteBars(ctx context.Context, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol within [start, end],
	// ordered by timestamp.
	ReadBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols available in storage.
	ListSymbols(ctx context.Context) ([]string, error)
}

// ClosePrices extracts the chronological closing prices of bars as the
// integer series the backtest engine consumes.
func ClosePrices(bars []domain.Bar) []int64 {
	if len(bars) == 0 {
		return nil
	}
	prices := make([]int64, 0, len(bars))
	for _, b := range bars {
		prices = append(prices, b.CloseCents())
	}
	return prices
}
