package market

import "math/rand"

// Market owns a set of stocks and can advance their quotes one simulated
// step at a time. Randomness comes from an injected source so paths are
// reproducible under a fixed seed.
type Market struct {
	stocks []*Stock
	rng    *rand.Rand
}

// New creates a Market drawing random moves from rng.
func New(rng *rand.Rand) *Market {
	return &Market{rng: rng}
}

// AddStock registers a stock with the market.
func (m *Market) AddStock(s *Stock) {
	m.stocks = append(m.stocks, s)
}

// Stock returns the stock with the given code, or nil when absent.
func (m *Market) Stock(code string) *Stock {
	for _, s := range m.stocks {
		if s.Code == code {
			return s
		}
	}
	return nil
}

// SimulateTick advances every stock by one random step: 95% of steps move
// uniformly within ±3%, the remaining 5% crash between −5% and −15%.
// Prices never fall below 1.
func (m *Market) SimulateTick() {
	for _, s := range m.stocks {
		s.UpdatePrice(step(m.rng, s.current))
	}
}

// RandomPath generates a price series of n ticks starting at start, using
// the same step distribution as SimulateTick. The start price is tick 0.
func RandomPath(rng *rand.Rand, start int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	path := make([]int64, 0, n)
	price := start
	path = append(path, price)
	for len(path) < n {
		price = step(rng, price)
		path = append(path, price)
	}
	return path
}

// step draws one random move and applies it to price.
func step(rng *rand.Rand, price int64) int64 {
	var rate float64
	if rng.Intn(100) < 95 {
		rate = float64(rng.Intn(601)-300) / 10000 // -3% .. +3%
	} else {
		rate = -float64(rng.Intn(1001)+500) / 10000 // -15% .. -5%
	}
	next := int64(float64(price) * (1 + rate))
	if next < 1 {
		next = 1
	}
	return next
}

// SampleSeries returns the canonical 30-tick demo path: a steep crash into a
// bottom around tick 10 followed by a recovery to a new high.
func SampleSeries() []int64 {
	return []int64{
		70000, 71000, 69500, 68000, 65000,
		62000, 58000, 55000, 53000, 50000,
		48000, 49000, 51000, 52000, 54000,
		56000, 58000, 60000, 62000, 64000,
		65000, 67000, 68000, 70000, 72000,
		74000, 75000, 76000, 78000, 80000,
	}
}
