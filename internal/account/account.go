// Package account implements the demo brokerage ledger: cash accounts,
// market orders executed against the simulated market, transaction logs, and
// user login. Everything lives in memory; nothing is persisted.
package account

import (
	"fmt"
	"time"

	"habitlab/internal/ledger"
	"habitlab/internal/market"
)

// Side identifies the direction of an order.
type Side string

// Order sides.
const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Status identifies the lifecycle state of an order.
type Status string

// Order statuses.
const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Order is a market order awaiting execution at the instrument's current
// price.
type Order struct {
	ID        int
	Symbol    string
	Side      Side
	Qty       int64
	Status    Status
	CreatedAt time.Time
}

// Transaction records one executed order with its notional and fee.
type Transaction struct {
	ID         int
	OrderID    int
	Symbol     string
	Side       Side
	Qty        int64
	Price      int64
	Notional   int64
	Fee        int64
	ExecutedAt time.Time
}

// Account holds a cash balance, a per-symbol position book, and the order and
// transaction logs. The ID sequences are fields of the account that created
// the records, not shared globals.
type Account struct {
	Number string

	balance      int64
	positions    map[string]*ledger.Position
	orders       []*Order
	transactions []Transaction
	nextOrderID  int
	nextTxID     int
	feeRate      float64
	risk         *RiskManager
}

// New creates an Account with the given number, starting balance, and fee
// rate applied to every execution.
func New(number string, initialBalance int64, feeRate float64) *Account {
	return &Account{
		Number:      number,
		balance:     initialBalance,
		positions:   make(map[string]*ledger.Position),
		nextOrderID: 1,
		nextTxID:    1,
		feeRate:     feeRate,
	}
}

// SetRiskManager installs a pre-trade risk check applied to buy executions.
func (a *Account) SetRiskManager(rm *RiskManager) { a.risk = rm }

// Deposit adds amount to the balance; non-positive amounts are ignored.
func (a *Account) Deposit(amount int64) {
	if amount > 0 {
		a.balance += amount
	}
}

// Withdraw removes amount from the balance, reporting whether the balance
// covered it.
func (a *Account) Withdraw(amount int64) bool {
	if amount <= 0 || a.balance < amount {
		return false
	}
	a.balance -= amount
	return true
}

// Balance returns the free cash balance.
func (a *Account) Balance() int64 { return a.balance }

// Position returns the held position for symbol, or nil when flat.
func (a *Account) Position(symbol string) *ledger.Position {
	return a.positions[symbol]
}

// Positions returns the symbols currently held.
func (a *Account) Positions() map[string]*ledger.Position { return a.positions }

// Orders returns all orders placed on this account.
func (a *Account) Orders() []*Order { return a.orders }

// Transactions returns all executed transactions.
func (a *Account) Transactions() []Transaction { return a.transactions }

// PlaceOrder records a pending market order and returns its ID. Validation
// happens at execution time, when the fill price is known.
func (a *Account) PlaceOrder(symbol string, side Side, qty int64) int {
	o := &Order{
		ID:        a.nextOrderID,
		Symbol:    symbol,
		Side:      side,
		Qty:       qty,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	a.nextOrderID++
	a.orders = append(a.orders, o)
	return o.ID
}

// CancelOrder marks a pending order cancelled.
func (a *Account) CancelOrder(orderID int) error {
	o := a.findOrder(orderID)
	if o == nil {
		return fmt.Errorf("order %d not found", orderID)
	}
	if o.Status != StatusPending {
		return fmt.Errorf("order %d is %s, not cancellable", orderID, o.Status)
	}
	o.Status = StatusCancelled
	return nil
}

// ExecuteOrder fills a pending order at the symbol's current market price,
// moving cash and position and appending a transaction record.
func (a *Account) ExecuteOrder(orderID int, m *market.Market) error {
	o := a.findOrder(orderID)
	if o == nil {
		return fmt.Errorf("order %d not found", orderID)
	}
	if o.Status != StatusPending {
		return fmt.Errorf("order %d is %s, not executable", orderID, o.Status)
	}
	if o.Qty <= 0 {
		return fmt.Errorf("order %d has non-positive quantity %d", orderID, o.Qty)
	}
	stock := m.Stock(o.Symbol)
	if stock == nil {
		return fmt.Errorf("unknown symbol %q", o.Symbol)
	}

	price := stock.CurrentPrice()
	notional := price * o.Qty
	fee := ledger.Fee(notional, a.feeRate)

	switch o.Side {
	case SideBuy:
		if a.risk != nil {
			if err := a.risk.CheckBuy(notional, a.TotalAssetValue(m)); err != nil {
				return err
			}
		}
		if a.balance < notional+fee {
			return fmt.Errorf("insufficient balance: need %d, have %d", notional+fee, a.balance)
		}
		a.balance -= notional + fee
		pos := a.positions[o.Symbol]
		if pos == nil {
			pos = &ledger.Position{}
			a.positions[o.Symbol] = pos
		}
		pos.AddLot(o.Qty, price)

	case SideSell:
		pos := a.positions[o.Symbol]
		if pos == nil || pos.Shares < o.Qty {
			return fmt.Errorf("insufficient position in %s to sell %d", o.Symbol, o.Qty)
		}
		pos.Reduce(o.Qty)
		if pos.Shares == 0 {
			delete(a.positions, o.Symbol)
		}
		a.balance += notional - fee

	default:
		return fmt.Errorf("unknown order side %q", o.Side)
	}

	o.Status = StatusCompleted
	a.transactions = append(a.transactions, Transaction{
		ID:         a.nextTxID,
		OrderID:    o.ID,
		Symbol:     o.Symbol,
		Side:       o.Side,
		Qty:        o.Qty,
		Price:      price,
		Notional:   notional,
		Fee:        fee,
		ExecutedAt: time.Now(),
	})
	a.nextTxID++
	return nil
}

// PortfolioValue returns the market value of all held positions at current
// quotes. Symbols missing from the market are valued at zero.
func (a *Account) PortfolioValue(m *market.Market) int64 {
	var total int64
	for symbol, pos := range a.positions {
		if stock := m.Stock(symbol); stock != nil {
			total += pos.Value(stock.CurrentPrice())
		}
	}
	return total
}

// TotalAssetValue returns balance plus portfolio value.
func (a *Account) TotalAssetValue(m *market.Market) int64 {
	return a.balance + a.PortfolioValue(m)
}

func (a *Account) findOrder(orderID int) *Order {
	for _, o := range a.orders {
		if o.ID == orderID {
			return o
		}
	}
	return nil
}
