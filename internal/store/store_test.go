package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"habitlab/internal/domain"
)

func sampleBars(symbol string) []domain.Bar {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	closes := []float64{700.00, 630.00, 567.00, 595.35, 665.00}
	var bars []domain.Bar
	for i, c := range closes {
		bars = append(bars, domain.Bar{
			Symbol:     symbol,
			Timestamp:  base.AddDate(0, 0, i),
			Open:       c - 1,
			High:       c + 2,
			Low:        c - 3,
			Close:      c,
			Volume:     int64(1000 + i),
			TradeCount: int64(10 + i),
			VWAP:       c + 0.5,
		})
	}
	return bars
}

func TestParquetBarPath(t *testing.T) {
	s := NewParquetStore("/data")

	got := s.barPath("AAPL", 2024)
	want := filepath.Join("/data", "daily", "AAPL", "2024.parquet")
	if got != want {
		t.Errorf("barPath = %q, want %q", got, want)
	}
}

func TestParquetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewParquetStore(t.TempDir())
	bars := sampleBars("AAPL")

	if err := s.WriteBars(ctx, bars); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	got, err := s.ReadBars(ctx, "AAPL", bars[0].Timestamp, bars[len(bars)-1].Timestamp)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != len(bars) {
		t.Fatalf("ReadBars returned %d bars, want %d", len(got), len(bars))
	}
	for i := range got {
		if !got[i].Timestamp.Equal(bars[i].Timestamp) {
			t.Errorf("bar %d timestamp = %v, want %v", i, got[i].Timestamp, bars[i].Timestamp)
		}
		if got[i].Close != bars[i].Close {
			t.Errorf("bar %d close = %v, want %v", i, got[i].Close, bars[i].Close)
		}
	}
}

func TestParquetReadBarsRangeFilter(t *testing.T) {
	ctx := context.Background()
	s := NewParquetStore(t.TempDir())
	bars := sampleBars("AAPL")

	if err := s.WriteBars(ctx, bars); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	got, err := s.ReadBars(ctx, "AAPL", bars[1].Timestamp, bars[3].Timestamp)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ReadBars returned %d bars, want 3", len(got))
	}
	if !got[0].Timestamp.Equal(bars[1].Timestamp) {
		t.Errorf("first bar timestamp = %v, want %v", got[0].Timestamp, bars[1].Timestamp)
	}
}

func TestParquetMergeOnRewrite(t *testing.T) {
	ctx := context.Background()
	s := NewParquetStore(t.TempDir())
	bars := sampleBars("AAPL")

	if err := s.WriteBars(ctx, bars[:3]); err != nil {
		t.Fatalf("first WriteBars: %v", err)
	}
	// Overlapping write: bar 2 is rewritten with a new close, bars 3-4 added.
	updated := make([]domain.Bar, len(bars)-2)
	copy(updated, bars[2:])
	updated[0].Close = 999.99
	if err := s.WriteBars(ctx, updated); err != nil {
		t.Fatalf("second WriteBars: %v", err)
	}

	got, err := s.ReadBars(ctx, "AAPL", bars[0].Timestamp, bars[len(bars)-1].Timestamp)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != len(bars) {
		t.Fatalf("ReadBars returned %d bars, want %d", len(got), len(bars))
	}
	if got[2].Close != 999.99 {
		t.Errorf("merged bar close = %v, want 999.99 (incoming wins)", got[2].Close)
	}
}

func TestParquetListSymbols(t *testing.T) {
	ctx := context.Background()
	s := NewParquetStore(t.TempDir())

	if err := s.WriteBars(ctx, sampleBars("MSFT")); err != nil {
		t.Fatalf("WriteBars MSFT: %v", err)
	}
	if err := s.WriteBars(ctx, sampleBars("AAPL")); err != nil {
		t.Fatalf("WriteBars AAPL: %v", err)
	}

	got, err := s.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("ListSymbols: %v", err)
	}
	want := []string{"AAPL", "MSFT"}
	if len(got) != len(want) {
		t.Fatalf("ListSymbols = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListSymbols[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bars.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	bars := sampleBars("TSLA")
	if err := s.WriteBars(ctx, bars); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	got, err := s.ReadBars(ctx, "TSLA", bars[0].Timestamp, bars[len(bars)-1].Timestamp)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != len(bars) {
		t.Fatalf("ReadBars returned %d bars, want %d", len(got), len(bars))
	}
	for i := range got {
		if !got[i].Timestamp.Equal(bars[i].Timestamp) {
			t.Errorf("bar %d timestamp = %v, want %v", i, got[i].Timestamp, bars[i].Timestamp)
		}
		if got[i].Close != bars[i].Close {
			t.Errorf("bar %d close = %v, want %v", i, got[i].Close, bars[i].Close)
		}
	}

	// Upsert: rewriting the same bars must not duplicate rows.
	if err := s.WriteBars(ctx, bars); err != nil {
		t.Fatalf("second WriteBars: %v", err)
	}
	got, err = s.ReadBars(ctx, "TSLA", bars[0].Timestamp, bars[len(bars)-1].Timestamp)
	if err != nil {
		t.Fatalf("ReadBars after upsert: %v", err)
	}
	if len(got) != len(bars) {
		t.Errorf("after upsert got %d bars, want %d", len(got), len(bars))
	}
}

func TestSQLiteListSymbols(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bars.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	if err := s.WriteBars(ctx, sampleBars("NVDA")); err != nil {
		t.Fatalf("WriteBars NVDA: %v", err)
	}
	if err := s.WriteBars(ctx, sampleBars("AMD")); err != nil {
		t.Fatalf("WriteBars AMD: %v", err)
	}

	got, err := s.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("ListSymbols: %v", err)
	}
	want := []string{"AMD", "NVDA"}
	if len(got) != len(want) {
		t.Fatalf("ListSymbols = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListSymbols[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClosePrices(t *testing.T) {
	bars := sampleBars("AAPL")

	got := ClosePrices(bars)
	want := []int64{70000, 63000, 56700, 59535, 66500}
	if len(got) != len(want) {
		t.Fatalf("ClosePrices returned %d prices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ClosePrices[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if ClosePrices(nil) != nil {
		t.Error("ClosePrices(nil) should be nil")
	}
}
