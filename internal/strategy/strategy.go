// Package strategy defines the per-tick decision contract trading strategies
// implement and provides a Registry that preserves registration order.
package strategy

import "habitlab/internal/ledger"

// Strategy is the interface every trading habit implements. The backtest
// engine feeds each price tick to every registered strategy in the same
// order; strategies mutate only their own Book and never return errors,
// since a skipped trade is a business outcome, not a fault.
type Strategy interface {
	// Name returns the unique identifier for this strategy.
	Name() string

	// OnTick consumes one price observation. index is the zero-based tick
	// position, price the observed price in integer currency units, and
	// changeRate the percentage change versus the previous tick (0 on the
	// first tick). Implementations must record equity exactly once per call
	// via their Book, after any trading decision.
	OnTick(index int, price int64, changeRate float64)

	// OnFinish runs once after the final tick, for strategies that need
	// end-of-run cleanup. Most implementations do nothing here.
	OnFinish(lastPrice int64)

	// Book exposes the strategy's position ledger and equity history.
	Book() *Book
}

// Book is the bookkeeping state every strategy owns: a cost-basis ledger and
// the equity curve recorded once per tick. It is frozen once a run completes.
type Book struct {
	InitialCash int64
	Ledger      *ledger.Ledger
	Equity      []int64
}

// NewBook creates a Book seeded with initialCash and an empty equity history.
func NewBook(initialCash int64) *Book {
	return &Book{
		InitialCash: initialCash,
		Ledger:      ledger.New(initialCash),
	}
}

// RecordEquity appends the current total portfolio value at price to the
// equity history.
func (b *Book) RecordEquity(price int64) {
	b.Equity = append(b.Equity, b.Ledger.TotalValue(price))
}

// Registry holds a collection of strategies in registration order. Order
// matters: reports are produced and ranked-tie-broken in the order strategies
// were registered.
type Registry struct {
	order  []Strategy
	byName map[string]Strategy
}

// NewRegistry creates an empty strategy Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Strategy),
	}
}

// Register adds a strategy to the registry, keyed by its Name(). Registering
// the same name twice replaces the entry but keeps the original position.
func (r *Registry) Register(s Strategy) {
	if _, exists := r.byName[s.Name()]; exists {
		for i, existing := range r.order {
			if existing.Name() == s.Name() {
				r.order[i] = s
				break
			}
		}
	} else {
		r.order = append(r.order, s)
	}
	r.byName[s.Name()] = s
}

// Get retrieves a strategy by name. The second return value indicates whether
// the strategy was found.
func (r *Registry) Get(name string) (Strategy, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// List returns all registered strategies in registration order.
func (r *Registry) List() []Strategy {
	out := make([]Strategy, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns all registered strategy names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, s := range r.order {
		names = append(names, s.Name())
	}
	return names
}

// Len returns the number of registered strategies.
func (r *Registry) Len() int {
	return len(r.order)
}
