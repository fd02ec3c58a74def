package gather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"habitlab/internal/domain"
	"habitlab/internal/store"
	"habitlab/internal/util"
)

// ---------------------------------------------------------------------------
// Compile-time interface checks
// ---------------------------------------------------------------------------

var _ Gatherer = (*DailyBarGatherer)(nil)

// ---------------------------------------------------------------------------
// DailyBarGatherer — daily OHLCV bars from the Alpaca API.
// ---------------------------------------------------------------------------

// DailyBarGatherer fetches daily bar data for a configured list of US equity
// symbols via the Alpaca market-data API and writes it to a BarStore.
type DailyBarGatherer struct {
	client    *marketdata.Client
	store     store.BarStore
	symbols   []string
	dates     DateRange
	batchSize int // symbols per API call
	limiter   *util.RateLimiter
	log       *slog.Logger
}

// NewDailyBarGatherer creates a DailyBarGatherer configured with the given
// Alpaca credentials, target store, symbol list, and date range.
func NewDailyBarGatherer(apiKey, apiSecret, dataURL string, s store.BarStore, symbols []string, dates DateRange, batchSize, rateLimitPerMinute int) *DailyBarGatherer {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	return &DailyBarGatherer{
		client:    marketdata.NewClient(opts),
		store:     s,
		symbols:   symbols,
		dates:     dates,
		batchSize: batchSize,
		limiter:   util.NewRateLimiter(rateLimitPerMinute),
		log:       slog.Default().With("gatherer", "daily-bars"),
	}
}

// Name returns the gatherer identifier.
func (g *DailyBarGatherer) Name() string { return "daily-bars" }

// Run fetches daily bars for the configured symbols and writes them to the
// store. Batches are fetched sequentially under the rate limiter; a failed
// batch is retried with backoff before the run aborts.
func (g *DailyBarGatherer) Run(ctx context.Context) error {
	if len(g.symbols) == 0 {
		return fmt.Errorf("no symbols configured")
	}
	if !g.dates.End.After(g.dates.Start) {
		return fmt.Errorf("invalid date range: start %s, end %s",
			g.dates.Start.Format("2006-01-02"), g.dates.End.Format("2006-01-02"))
	}

	runStart := time.Now()
	totalBatches := (len(g.symbols) + g.batchSize - 1) / g.batchSize
	g.log.Info("starting daily-bars",
		"symbols", len(g.symbols),
		"batches", totalBatches,
		"start", g.dates.Start.Format("2006-01-02"),
		"end", g.dates.End.Format("2006-01-02"),
	)

	var totalBars int
	for i := 0; i < len(g.symbols); i += g.batchSize {
		end := min(i+g.batchSize, len(g.symbols))
		batch := g.symbols[i:end]
		batchNum := i/g.batchSize + 1

		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}

		var bars []domain.Bar
		err := util.Retry(ctx, 3, 2*time.Second, func() error {
			var fetchErr error
			bars, fetchErr = g.fetchMultiBars(ctx, batch)
			return fetchErr
		})
		if err != nil {
			return fmt.Errorf("batch %d/%d: %w", batchNum, totalBatches, err)
		}

		if len(bars) > 0 {
			if err := g.store.WriteBars(ctx, bars); err != nil {
				return fmt.Errorf("writing batch %d/%d: %w", batchNum, totalBatches, err)
			}
		}
		totalBars += len(bars)

		g.log.Info("batch done",
			"batch", fmt.Sprintf("%d/%d", batchNum, totalBatches),
			"bars", len(bars),
			"elapsed", time.Since(runStart).Round(time.Second),
		)
	}

	g.log.Info("complete",
		"bars", totalBars,
		"elapsed", time.Since(runStart).Round(time.Second),
	)
	return nil
}

// fetchMultiBars fetches daily bars for multiple symbols in a single API call.
func (g *DailyBarGatherer) fetchMultiBars(ctx context.Context, symbols []string) ([]domain.Bar, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	multiBars, err := g.client.GetMultiBars(symbols, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     g.dates.Start,
		End:       g.dates.End,
		Feed:      "sip",
	})
	if err != nil {
		return nil, fmt.Errorf("GetMultiBars: %w", err)
	}

	var bars []domain.Bar
	for symbol, alpacaBars := range multiBars {
		for _, ab := range alpacaBars {
			bars = append(bars, domain.Bar{
				Symbol:     strings.ToUpper(symbol),
				Timestamp:  ab.Timestamp,
				Open:       ab.Open,
				High:       ab.High,
				Low:        ab.Low,
				Close:      ab.Close,
				Volume:     int64(ab.Volume),
				TradeCount: int64(ab.TradeCount),
				VWAP:       ab.VWAP,
			})
		}
	}
	return bars, nil
}
