// Package builtins provides the built-in trading habits that ship with
// habitlab. Each one drives its own ledger through the shared per-tick
// contract; none of them interact with each other.
package builtins

import (
	"habitlab/internal/ledger"
	"habitlab/internal/strategy"
)

// Registry identifiers for the built-in strategies. The report narrative
// locates its comparison pair by these names.
const (
	NamePanicSell = "panic-sell"
	NameDCA       = "dca"
	NameHold      = "buy-and-hold"
	NameSMACross  = "sma-cross"
)

// Compile-time interface check.
var _ strategy.Strategy = (*PanicSell)(nil)

// PanicSell models the investor who goes all-in on the first affordable tick
// and dumps the whole position the moment the loss reaches the stop
// threshold. After that single capitulation it stays out for good.
type PanicSell struct {
	book     *strategy.Book
	stopLoss float64 // negative fraction, e.g. -0.10
	feeRate  float64
	entered  bool
}

// NewPanicSell creates a PanicSell strategy with the given stop-loss
// threshold (a negative fraction) and fee rate.
func NewPanicSell(initialCash int64, stopLoss, feeRate float64) *PanicSell {
	return &PanicSell{
		book:     strategy.NewBook(initialCash),
		stopLoss: stopLoss,
		feeRate:  feeRate,
	}
}

// Name returns "panic-sell".
func (s *PanicSell) Name() string { return NamePanicSell }

// OnTick buys the maximum affordable quantity on the first tick where cash
// covers a share, then liquidates everything once the loss versus average
// cost reaches the stop threshold. A price exactly at the threshold triggers.
func (s *PanicSell) OnTick(_ int, price int64, _ float64) {
	led := s.book.Ledger

	if !s.entered && led.Cash >= price {
		if qty := ledger.Affordable(led.Cash, price, s.feeRate); qty > 0 {
			led.Buy(price, qty, s.feeRate)
			s.entered = true
		}
	} else if led.Shares > 0 && led.AvgCost > 0 {
		profitRate := float64(price-led.AvgCost) / float64(led.AvgCost)
		if profitRate <= s.stopLoss {
			led.LiquidateAll(price, s.feeRate)
		}
	}

	s.book.RecordEquity(price)
}

// OnFinish is a no-op; the position, if any, is valued at the last price by
// the report builder.
func (s *PanicSell) OnFinish(_ int64) {}

// Book returns the strategy's bookkeeping state.
func (s *PanicSell) Book() *strategy.Book { return s.book }
