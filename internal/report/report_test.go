package report

import (
	"bytes"
	"strings"
	"testing"

	"habitlab/internal/backtest"
	"habitlab/internal/strategy/builtins"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{10000000, "10,000,000"},
		{-1234567, "-1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(12.5); got != "+12.50%" {
		t.Errorf("FormatPercent(12.5) = %q, want %q", got, "+12.50%")
	}
	if got := FormatPercent(-3.125); got != "-3.12%" {
		t.Errorf("FormatPercent(-3.125) = %q, want %q", got, "-3.12%")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(builtins.NameDCA); got != "Dollar-Cost Averaging" {
		t.Errorf("DisplayName(dca) = %q", got)
	}
	if got := DisplayName("custom"); got != "custom" {
		t.Errorf("DisplayName(custom) = %q, want passthrough", got)
	}
}

func TestPrinterSummary(t *testing.T) {
	reports := []backtest.Report{
		{
			Name:        builtins.NamePanicSell,
			InitialCash: 10000000,
			FinalEquity: 9000000,
			TotalReturn: -10,
			MaxDrawdown: 10,
			Buys:        1,
			Sells:       1,
		},
		{
			Name:        builtins.NameDCA,
			InitialCash: 10000000,
			FinalEquity: 10625000,
			TotalReturn: 6.25,
			MaxDrawdown: 15,
			Buys:        3,
			FinalShares: 50,
			AvgCost:     70000,
		},
	}

	var buf bytes.Buffer
	NewPrinter(&buf).Summary(reports)
	out := buf.String()

	for _, want := range []string{
		"Panic Sell", "Dollar-Cost Averaging",
		"9,000,000", "10,625,000",
		"-10.00%", "+6.25%",
		"70,000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary output missing %q:\n%s", want, out)
		}
	}
	// Flat position shows no average cost.
	panicLine := strings.SplitN(out, "\n", 3)[1]
	if !strings.HasSuffix(strings.TrimRight(panicLine, " "), "-") {
		t.Errorf("flat position should print '-' for avg cost, got %q", panicLine)
	}
}

func TestPrinterRanking(t *testing.T) {
	reports := []backtest.Report{
		{Name: builtins.NamePanicSell, FinalEquity: 9000000, TotalReturn: -10},
		{Name: builtins.NameDCA, FinalEquity: 10625000, TotalReturn: 6.25},
	}

	var buf bytes.Buffer
	NewPrinter(&buf).Ranking(reports)
	out := buf.String()

	dcaIdx := strings.Index(out, "Dollar-Cost Averaging")
	panicIdx := strings.Index(out, "Panic Sell")
	if dcaIdx < 0 || panicIdx < 0 {
		t.Fatalf("Ranking output missing strategies:\n%s", out)
	}
	if dcaIdx > panicIdx {
		t.Errorf("higher return should rank first:\n%s", out)
	}
}

func TestPrinterNarrative(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Narrative(nil)
	if got := strings.TrimSpace(buf.String()); got != backtest.NoComparable {
		t.Errorf("Narrative(nil) = %q, want %q", got, backtest.NoComparable)
	}
}

func TestEquityChartValidation(t *testing.T) {
	if _, err := EquityChart("t", nil, nil); err == nil {
		t.Error("empty series should error")
	}
	if _, err := EquityChart("t", []string{"a"}, [][]int64{{}}); err == nil {
		t.Error("empty curve should error")
	}
	if _, err := EquityChart("t", []string{"a", "b"}, [][]int64{{1, 2}, {1}}); err == nil {
		t.Error("ragged curves should error")
	}
}

func TestEquityChartRenders(t *testing.T) {
	names := []string{builtins.NameDCA, builtins.NameHold}
	curves := [][]int64{
		{1000, 990, 1010, 1050},
		{1000, 1000, 1000, 1000},
	}

	img, err := EquityChart("Habit Battle", names, curves)
	if err != nil {
		t.Fatalf("EquityChart: %v", err)
	}
	if len(img) == 0 {
		t.Error("EquityChart returned empty image")
	}
}
