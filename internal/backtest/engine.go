// Package backtest replays a fixed historical price series through a set of
// trading strategies in lock-step and evaluates the outcome. The replay loop
// is a plain sequential pass with no I/O: every strategy sees the ticks in
// the same chronological order and records equity once per tick.
package backtest

import "habitlab/internal/strategy"

// Engine owns one price series and the strategies competing over it.
type Engine struct {
	prices   []int64
	registry *strategy.Registry
}

// NewEngine creates an Engine that will replay prices through every strategy
// in the registry, in registration order.
func NewEngine(prices []int64, registry *strategy.Registry) *Engine {
	return &Engine{
		prices:   prices,
		registry: registry,
	}
}

// Run replays ticks 0..N-1. For each tick it computes the percentage change
// versus the previous price (0 on the first tick) and invokes every
// strategy's OnTick with identical arguments. After the last tick it calls
// OnFinish on every strategy and builds one Report each, in registration
// order. An empty series produces no reports.
func (e *Engine) Run() []Report {
	if len(e.prices) == 0 {
		return nil
	}

	strategies := e.registry.List()
	prev := e.prices[0]
	for i, price := range e.prices {
		changeRate := 0.0
		if i > 0 && prev != 0 {
			changeRate = float64(price-prev) / float64(prev) * 100
		}
		for _, s := range strategies {
			s.OnTick(i, price, changeRate)
		}
		prev = price
	}

	lastPrice := e.prices[len(e.prices)-1]
	reports := make([]Report, 0, len(strategies))
	for _, s := range strategies {
		s.OnFinish(lastPrice)
		reports = append(reports, buildReport(s, lastPrice))
	}
	return reports
}
