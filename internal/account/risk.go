package account

import "fmt"

// RiskManager enforces pre-trade limits on the demo account.
type RiskManager struct {
	maxPositionPct float64
}

// NewRiskManager creates a RiskManager that caps a single buy's notional at
// maxPositionPct of account equity (e.g. 0.10 for 10%). A non-positive limit
// disables the check.
func NewRiskManager(maxPositionPct float64) *RiskManager {
	return &RiskManager{maxPositionPct: maxPositionPct}
}

// CheckBuy rejects a buy whose notional exceeds the configured fraction of
// equity.
func (rm *RiskManager) CheckBuy(notional, equity int64) error {
	if rm.maxPositionPct <= 0 {
		return nil
	}
	if float64(notional) > float64(equity)*rm.maxPositionPct {
		return fmt.Errorf("order notional %d exceeds %.0f%% of equity %d",
			notional, rm.maxPositionPct*100, equity)
	}
	return nil
}
