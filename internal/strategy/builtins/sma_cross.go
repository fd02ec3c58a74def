package builtins

import (
	"habitlab/internal/ledger"
	"habitlab/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*SMACross)(nil)

// SMACross implements a simple moving average crossover over tick prices. A
// golden cross (short SMA rising above the long SMA) buys the maximum
// affordable quantity; a death cross liquidates the position. Unlike the
// single-shot habits it trades as often as the crossovers fire.
type SMACross struct {
	book        *strategy.Book
	shortPeriod int
	longPeriod  int
	feeRate     float64
	prices      []int64
	prevDiff    float64
	havePrev    bool
}

// NewSMACross creates an SMACross strategy with the specified short and long
// moving average periods. Periods are clamped to at least 1 and swapped when
// given in the wrong order, so the window slices stay in bounds.
func NewSMACross(initialCash int64, short, long int, feeRate float64) *SMACross {
	short = max(short, 1)
	long = max(long, 1)
	if short > long {
		short, long = long, short
	}
	return &SMACross{
		book:        strategy.NewBook(initialCash),
		shortPeriod: short,
		longPeriod:  long,
		feeRate:     feeRate,
	}
}

// Name returns "sma-cross".
func (s *SMACross) Name() string { return NameSMACross }

// OnTick appends the price, computes both SMAs once enough data exists, and
// trades on sign changes of their difference.
func (s *SMACross) OnTick(_ int, price int64, _ float64) {
	s.prices = append(s.prices, price)
	led := s.book.Ledger

	if len(s.prices) >= s.longPeriod {
		diff := s.sma(s.shortPeriod) - s.sma(s.longPeriod)
		if s.havePrev {
			switch {
			case s.prevDiff <= 0 && diff > 0:
				if qty := ledger.Affordable(led.Cash, price, s.feeRate); qty > 0 {
					led.Buy(price, qty, s.feeRate)
				}
			case s.prevDiff >= 0 && diff < 0:
				led.LiquidateAll(price, s.feeRate)
			}
		}
		s.prevDiff = diff
		s.havePrev = true
	}

	s.book.RecordEquity(price)
}

// OnFinish is a no-op.
func (s *SMACross) OnFinish(_ int64) {}

// Book returns the strategy's bookkeeping state.
func (s *SMACross) Book() *strategy.Book { return s.book }

// sma averages the last n prices.
func (s *SMACross) sma(n int) float64 {
	var sum int64
	for _, p := range s.prices[len(s.prices)-n:] {
		sum += p
	}
	return float64(sum) / float64(n)
}
