// Package market models instruments and the random price-path simulator used
// to exercise the backtester and the account demo. Prices are integer
// currency units throughout.
package market

// Stock holds one instrument's identity, current quote, and ordered price
// history. The history is the fixed series the backtest engine replays.
type Stock struct {
	Code string
	Name string

	current  int64
	previous int64
	history  []int64
}

// NewStock creates a Stock quoted at price with an empty history.
func NewStock(code, name string, price int64) *Stock {
	return &Stock{
		Code:     code,
		Name:     name,
		current:  price,
		previous: price,
	}
}

// UpdatePrice moves the quote to newPrice, remembering the previous one.
func (s *Stock) UpdatePrice(newPrice int64) {
	s.previous = s.current
	s.current = newPrice
}

// AddHistory appends one observation to the price history.
func (s *Stock) AddHistory(price int64) {
	s.history = append(s.history, price)
}

// CurrentPrice returns the latest quote.
func (s *Stock) CurrentPrice() int64 { return s.current }

// ChangeRate returns the percentage move of the latest quote versus the one
// before it, or 0 when there is no previous price.
func (s *Stock) ChangeRate() float64 {
	if s.previous == 0 {
		return 0
	}
	return float64(s.current-s.previous) / float64(s.previous) * 100
}

// PriceAt returns the history entry at index i; ok is false out of range.
func (s *Stock) PriceAt(i int) (price int64, ok bool) {
	if i < 0 || i >= len(s.history) {
		return 0, false
	}
	return s.history[i], true
}

// History returns the full price history.
func (s *Stock) History() []int64 { return s.history }

// HistoryLen returns the number of recorded observations.
func (s *Stock) HistoryLen() int { return len(s.history) }
