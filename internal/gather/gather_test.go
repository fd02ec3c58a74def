package gather

import (
	"context"
	"testing"
	"time"
)

func TestDailyBarGathererName(t *testing.T) {
	g := NewDailyBarGatherer("key", "secret", "https://data.alpaca.markets",
		nil, []string{"AAPL"}, DateRange{}, 100, 200)
	if got := g.Name(); got != "daily-bars" {
		t.Errorf("DailyBarGatherer.Name() = %q, want %q", got, "daily-bars")
	}
}

func TestDailyBarGathererRejectsEmptyConfig(t *testing.T) {
	valid := DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	g := NewDailyBarGatherer("key", "secret", "", nil, nil, valid, 100, 200)
	if err := g.Run(context.Background()); err == nil {
		t.Error("Run with no symbols should error")
	}

	g = NewDailyBarGatherer("key", "secret", "", nil, []string{"AAPL"},
		DateRange{Start: valid.End, End: valid.Start}, 100, 200)
	if err := g.Run(context.Background()); err == nil {
		t.Error("Run with inverted date range should error")
	}
}
