// Package ledger implements the fee-aware average-cost bookkeeping shared by
// every trading strategy and by the account portfolio. All money and quantity
// arithmetic is int64 with truncation toward zero.
package ledger

// Position tracks shares held and the weighted-average purchase price per
// share. Buying folds the new lot into the average; selling reduces shares but
// never moves the per-share cost basis. The basis is zeroed only when the
// position empties.
type Position struct {
	Shares  int64
	AvgCost int64
}

// AddLot folds qty shares bought at price into the weighted average.
func (p *Position) AddLot(qty, price int64) {
	if qty <= 0 {
		return
	}
	total := p.AvgCost*p.Shares + price*qty
	p.Shares += qty
	p.AvgCost = total / p.Shares
}

// Reduce removes qty shares from the position. It returns false when qty
// exceeds the held amount.
func (p *Position) Reduce(qty int64) bool {
	if qty > p.Shares {
		return false
	}
	p.Shares -= qty
	if p.Shares == 0 {
		p.AvgCost = 0
	}
	return true
}

// Value returns the market value of the held shares at price.
func (p *Position) Value(price int64) int64 {
	return p.Shares * price
}

// Profit returns the unrealized profit of the position at price.
func (p *Position) Profit(price int64) int64 {
	return (price - p.AvgCost) * p.Shares
}

// ProfitRate returns the unrealized profit as a percentage of the invested
// amount, or 0 for an empty position.
func (p *Position) ProfitRate(price int64) float64 {
	invested := p.AvgCost * p.Shares
	if invested == 0 {
		return 0
	}
	return float64(p.Profit(price)) / float64(invested) * 100
}

// Fee returns the trading fee on a notional amount, truncated toward zero.
func Fee(notional int64, feeRate float64) int64 {
	return int64(float64(notional) * feeRate)
}

// Affordable returns how many whole shares a budget covers at price once the
// per-share fee is added in.
func Affordable(budget, price int64, feeRate float64) int64 {
	perShare := price + Fee(price, feeRate)
	if perShare <= 0 {
		return 0
	}
	return budget / perShare
}

// Ledger couples a cash balance with a Position. Insufficient cash or a
// non-positive quantity makes an operation a no-op, never an error: skipped
// trades are ordinary business outcomes in the simulation.
type Ledger struct {
	Cash int64
	Position
	Buys  int
	Sells int
}

// New creates a Ledger holding initialCash and no shares.
func New(initialCash int64) *Ledger {
	return &Ledger{Cash: initialCash}
}

// Buy purchases qty shares at price, debiting cost plus fee and recomputing
// the average cost. It reports whether the purchase happened.
func (l *Ledger) Buy(price, qty int64, feeRate float64) bool {
	if qty <= 0 {
		return false
	}
	cost := price * qty
	fee := Fee(cost, feeRate)
	if l.Cash < cost+fee {
		return false
	}
	l.AddLot(qty, price)
	l.Cash -= cost + fee
	l.Buys++
	return true
}

// Sell disposes of qty shares at price, crediting the proceeds net of fee.
// A partial sale leaves the average cost untouched.
func (l *Ledger) Sell(price, qty int64, feeRate float64) bool {
	if qty <= 0 || qty > l.Shares {
		return false
	}
	revenue := price * qty
	fee := Fee(revenue, feeRate)
	l.Reduce(qty)
	l.Cash += revenue - fee
	l.Sells++
	return true
}

// LiquidateAll sells the entire position at price, zeroing shares and the
// average cost. No-op on an empty position.
func (l *Ledger) LiquidateAll(price int64, feeRate float64) bool {
	if l.Shares == 0 {
		return false
	}
	revenue := price * l.Shares
	fee := Fee(revenue, feeRate)
	l.Cash += revenue - fee
	l.Shares = 0
	l.AvgCost = 0
	l.Sells++
	return true
}

// TotalValue returns cash plus the position's market value at price.
func (l *Ledger) TotalValue(price int64) int64 {
	return l.Cash + l.Shares*price
}
