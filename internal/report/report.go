// Package report renders backtest results for human consumption, as text
// summaries and equity-curve charts.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"habitlab/internal/backtest"
	"habitlab/internal/strategy/builtins"
)

// displayNames maps strategy identifiers to the labels used in printed
// output. Unknown identifiers are printed as-is.
var displayNames = map[string]string{
	builtins.NamePanicSell: "Panic Sell",
	builtins.NameDCA:       "Dollar-Cost Averaging",
	builtins.NameHold:      "Buy and Hold",
	builtins.NameSMACross:  "SMA Crossover",
}

// DisplayName returns the printable label for a strategy identifier.
func DisplayName(id string) string {
	if label, ok := displayNames[id]; ok {
		return label
	}
	return id
}

// Printer writes backtest reports to an output stream.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Summary prints a per-strategy results table in replay order.
func (p *Printer) Summary(reports []backtest.Report) {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tFINAL EQUITY\tRETURN\tMAX DD\tBUYS\tSELLS\tSHARES\tAVG COST")
	for _, r := range reports {
		avgCost := "-"
		if r.FinalShares > 0 {
			avgCost = FormatMoney(r.AvgCost)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			DisplayName(r.Name),
			FormatMoney(r.FinalEquity),
			FormatPercent(r.TotalReturn),
			FormatDrawdown(r.MaxDrawdown),
			r.Buys,
			r.Sells,
			r.FinalShares,
			avgCost,
		)
	}
	tw.Flush()
}

// Ranking prints strategies ordered by total return, best first.
func (p *Printer) Ranking(reports []backtest.Report) {
	ranked := backtest.Rank(reports)
	fmt.Fprintln(p.w, "Ranking by total return:")
	for i, r := range ranked {
		fmt.Fprintf(p.w, "  %d. %s\t%s (%s)\n",
			i+1,
			DisplayName(r.Name),
			FormatMoney(r.FinalEquity),
			FormatPercent(r.TotalReturn),
		)
	}
}

// Narrative prints the averaging-vs-panic comparison verdict.
func (p *Printer) Narrative(reports []backtest.Report) {
	fmt.Fprintln(p.w, backtest.Narrative(reports))
}

// All prints the summary table, ranking, and narrative with blank lines
// between the sections.
func (p *Printer) All(reports []backtest.Report) {
	p.Summary(reports)
	fmt.Fprintln(p.w)
	p.Ranking(reports)
	fmt.Fprintln(p.w)
	p.Narrative(reports)
}
