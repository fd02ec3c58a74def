package builtins

import (
	"habitlab/internal/ledger"
	"habitlab/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*DCA)(nil)

// DCA averages into a position on a schedule: it buys on the first affordable
// tick, then again whenever the configured tick interval has elapsed since
// the last buy or the price has dropped by the configured rate relative to
// the last buy price. Each tranche spends buyRatio of current cash, falling
// back to all remaining cash when the tranche cannot cover one share.
type DCA struct {
	book         *strategy.Book
	dropRate     float64 // negative fraction, e.g. -0.05
	interval     int     // minimum tick gap between scheduled buys
	buyRatio     float64 // fraction of current cash per tranche
	feeRate      float64
	lastBuyIndex int
	lastBuyPrice int64
}

// NewDCA creates a DCA strategy. dropRate is a negative fraction; interval is
// the re-buy tick gap; buyRatio the fraction of cash spent per buy.
func NewDCA(initialCash int64, dropRate float64, interval int, buyRatio, feeRate float64) *DCA {
	return &DCA{
		book:         strategy.NewBook(initialCash),
		dropRate:     dropRate,
		interval:     interval,
		buyRatio:     buyRatio,
		feeRate:      feeRate,
		lastBuyIndex: -1,
	}
}

// Name returns "dca".
func (s *DCA) Name() string { return NameDCA }

// OnTick applies the averaging schedule. A zero-quantity tranche buys nothing
// and leaves the last-buy bookkeeping untouched.
func (s *DCA) OnTick(index int, price int64, _ float64) {
	led := s.book.Ledger

	shouldBuy := false
	if s.lastBuyIndex < 0 && led.Cash >= price {
		shouldBuy = true // first entry
	} else if led.Cash >= price {
		intervalMet := index-s.lastBuyIndex >= s.interval
		dropMet := s.lastBuyPrice > 0 &&
			float64(price-s.lastBuyPrice)/float64(s.lastBuyPrice) <= s.dropRate
		shouldBuy = intervalMet || dropMet
	}

	if shouldBuy {
		budget := int64(float64(led.Cash) * s.buyRatio)
		if budget < price {
			// Too little left for a partial tranche; commit the rest.
			budget = led.Cash
		}
		if qty := ledger.Affordable(budget, price, s.feeRate); qty > 0 {
			led.Buy(price, qty, s.feeRate)
			s.lastBuyIndex = index
			s.lastBuyPrice = price
		}
	}

	s.book.RecordEquity(price)
}

// OnFinish is a no-op.
func (s *DCA) OnFinish(_ int64) {}

// Book returns the strategy's bookkeeping state.
func (s *DCA) Book() *strategy.Book { return s.book }
