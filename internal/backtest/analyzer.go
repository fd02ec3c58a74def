package backtest

import (
	"fmt"
	"math"
	"sort"

	"habitlab/internal/strategy"
	"habitlab/internal/strategy/builtins"
)

// Report is the immutable per-strategy summary built once after the replay
// finishes.
type Report struct {
	Name        string
	InitialCash int64
	FinalEquity int64
	TotalReturn float64 // percent
	MaxDrawdown float64 // percent
	Buys        int
	Sells       int
	FinalShares int64
	AvgCost     int64
}

// NoComparable is returned by Narrative when the DCA/panic comparison pair is
// incomplete.
const NoComparable = "no comparable strategies"

// buildReport snapshots a finished strategy, valuing any open position at the
// terminal price.
func buildReport(s strategy.Strategy, lastPrice int64) Report {
	book := s.Book()
	led := book.Ledger

	r := Report{
		Name:        s.Name(),
		InitialCash: book.InitialCash,
		FinalEquity: led.TotalValue(lastPrice),
		MaxDrawdown: MaxDrawdown(book.Equity),
		Buys:        led.Buys,
		Sells:       led.Sells,
		FinalShares: led.Shares,
		AvgCost:     led.AvgCost,
	}
	if r.InitialCash != 0 {
		r.TotalReturn = float64(r.FinalEquity-r.InitialCash) / float64(r.InitialCash) * 100
	}
	return r
}

// MaxDrawdown returns the largest peak-to-trough decline of an equity series
// as a percentage in [0, 100]. The running peak starts at the lowest
// representable value, so no drawdown is measured before the first point
// establishes a positive peak. An empty series yields 0.
func MaxDrawdown(equity []int64) float64 {
	peak := int64(math.MinInt64)
	maxDD := 0.0
	for _, eq := range equity {
		if eq > peak {
			peak = eq
		}
		if peak > 0 {
			if dd := float64(peak-eq) / float64(peak); dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD * 100
}

// Rank returns a copy of reports sorted by descending total return. The sort
// is stable: ties keep their registration order. Ranking already-sorted input
// is idempotent.
func Rank(reports []Report) []Report {
	ranked := make([]Report, len(reports))
	copy(ranked, reports)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalReturn > ranked[j].TotalReturn
	})
	return ranked
}

// Narrative compares the averaging habit against the panic habit and returns
// a short verdict. When either strategy is missing from the reports it
// returns NoComparable rather than guessing.
func Narrative(reports []Report) string {
	var dca, panicker *Report
	for i := range reports {
		switch reports[i].Name {
		case builtins.NameDCA:
			dca = &reports[i]
		case builtins.NamePanicSell:
			panicker = &reports[i]
		}
	}
	if dca == nil || panicker == nil {
		return NoComparable
	}

	diff := dca.TotalReturn - panicker.TotalReturn
	if diff > 0 {
		return fmt.Sprintf(
			"Averaging in beat panic selling by %.2f percentage points.\n"+
				"Fewer impulsive exits would have preserved more capital.", diff)
	}
	return fmt.Sprintf(
		"Cutting losses won this scenario by %.2f percentage points.\n"+
			"Over a long run, sticking to a plan still tends to hold up better.", -diff)
}
