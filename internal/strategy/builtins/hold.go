package builtins

import (
	"habitlab/internal/ledger"
	"habitlab/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*Hold)(nil)

// Hold buys once on the first affordable tick, spending buyRatio of its cash,
// and then does nothing for the rest of the run. Leftover cash sits idle.
type Hold struct {
	book     *strategy.Book
	buyRatio float64
	feeRate  float64
	entered  bool
}

// NewHold creates a buy-and-hold strategy that commits buyRatio of its
// starting cash on entry.
func NewHold(initialCash int64, buyRatio, feeRate float64) *Hold {
	return &Hold{
		book:     strategy.NewBook(initialCash),
		buyRatio: buyRatio,
		feeRate:  feeRate,
	}
}

// Name returns "buy-and-hold".
func (s *Hold) Name() string { return NameHold }

// OnTick performs the single entry buy, then only records equity.
func (s *Hold) OnTick(_ int, price int64, _ float64) {
	led := s.book.Ledger

	if !s.entered && led.Cash >= price {
		budget := int64(float64(led.Cash) * s.buyRatio)
		if qty := ledger.Affordable(budget, price, s.feeRate); qty > 0 {
			led.Buy(price, qty, s.feeRate)
			s.entered = true
		}
	}

	s.book.RecordEquity(price)
}

// OnFinish is a no-op; holding to the end is the whole point.
func (s *Hold) OnFinish(_ int64) {}

// Book returns the strategy's bookkeeping state.
func (s *Hold) Book() *strategy.Book { return s.book }
