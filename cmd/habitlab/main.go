package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"habitlab/internal/account"
	"habitlab/internal/backtest"
	"habitlab/internal/config"
	"habitlab/internal/market"
	"habitlab/internal/report"
	"habitlab/internal/store"
	"habitlab/internal/strategy"
	"habitlab/internal/strategy/builtins"
	"habitlab/internal/util"
)

const version = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: habitlab <command> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  battle     Replay the trading-habit strategies over a price series\n")
		fmt.Fprintf(os.Stderr, "  demo       Run the interactive account/order demo\n")
		fmt.Fprintf(os.Stderr, "  version    Print the CLI version\n")
		fmt.Fprintf(os.Stderr, "\n")
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("habitlab %s\n", version)

	case "battle":
		if err := runBattle(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "battle: %v\n", err)
			os.Exit(1)
		}

	case "demo":
		if err := runDemo(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "demo: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		flag.Usage()
		os.Exit(1)
	}
}

// loadConfig loads the YAML config at path, falling back to defaults when the
// default path does not exist. An explicit path that is missing is an error.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func runBattle(args []string) error {
	fs := flag.NewFlagSet("battle", flag.ExitOnError)
	cfgPath := fs.String("config", "config/habitlab.yaml", "config file path")
	source := fs.String("source", "sample", "price source: sample, sim, or store")
	backend := fs.String("store", "parquet", "store backend for -source store: parquet or sqlite")
	symbol := fs.String("symbol", "", "symbol to load for -source store")
	startStr := fs.String("start", "", "start date (YYYY-MM-DD) for -source store")
	endStr := fs.String("end", "", "end date (YYYY-MM-DD) for -source store")
	chartPath := fs.String("chart", "", "write an equity-curve PNG to this path")
	withSMA := fs.Bool("sma", false, "include the SMA crossover strategy")
	smaShort := fs.Int("sma-short", 5, "short SMA window")
	smaLong := fs.Int("sma-long", 20, "long SMA window")
	fs.Parse(args)

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	cfg, err := loadConfig(*cfgPath, explicit)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	util.SetDefault(util.NewLogger(cfg.Logging.Level, cfg.Logging.Format))

	prices, err := loadPrices(cfg, *source, *backend, *symbol, *startStr, *endStr)
	if err != nil {
		return err
	}
	if len(prices) == 0 {
		return fmt.Errorf("price series is empty")
	}

	bt := cfg.Backtest
	registry := strategy.NewRegistry()
	registry.Register(builtins.NewPanicSell(bt.InitialCash, bt.PanicThreshold, bt.FeeRate))
	registry.Register(builtins.NewDCA(bt.InitialCash, bt.DCADropRate, bt.DCAInterval, bt.DCABuyRatio, bt.FeeRate))
	registry.Register(builtins.NewHold(bt.InitialCash, bt.HoldBuyRatio, bt.FeeRate))
	if *withSMA {
		registry.Register(builtins.NewSMACross(bt.InitialCash, *smaShort, *smaLong, bt.FeeRate))
	}

	reports := backtest.NewEngine(prices, registry).Run()

	p := report.NewPrinter(os.Stdout)
	fmt.Printf("Replayed %d ticks with %d strategies.\n\n", len(prices), registry.Len())
	p.All(reports)

	if *chartPath != "" {
		names := registry.Names()
		curves := make([][]int64, 0, registry.Len())
		for _, s := range registry.List() {
			curves = append(curves, s.Book().Equity)
		}
		img, err := report.EquityChart("Strategy Equity Curves", names, curves)
		if err != nil {
			return fmt.Errorf("rendering chart: %w", err)
		}
		if err := os.WriteFile(*chartPath, img, 0o644); err != nil {
			return fmt.Errorf("writing chart: %w", err)
		}
		fmt.Printf("\nChart written to %s\n", *chartPath)
	}
	return nil
}

// loadPrices resolves the tick series for a battle from the selected source.
func loadPrices(cfg *config.Config, source, backend, symbol, startStr, endStr string) ([]int64, error) {
	switch source {
	case "sample":
		return market.SampleSeries(), nil

	case "sim":
		seed := cfg.Market.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		return market.RandomPath(rng, cfg.Market.StartPrice, cfg.Market.Ticks), nil

	case "store":
		if symbol == "" {
			return nil, fmt.Errorf("-symbol is required with -source store")
		}
		start, end, err := parseDateRange(startStr, endStr)
		if err != nil {
			return nil, err
		}

		var bs store.BarStore
		switch backend {
		case "parquet":
			bs = store.NewParquetStore(cfg.Storage.DataDir)
		case "sqlite":
			s, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
			if err != nil {
				return nil, fmt.Errorf("opening sqlite store: %w", err)
			}
			defer s.Close()
			bs = s
		default:
			return nil, fmt.Errorf("unknown store backend %q", backend)
		}

		bars, err := bs.ReadBars(context.Background(), symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("reading bars for %s: %w", symbol, err)
		}
		if len(bars) == 0 {
			return nil, fmt.Errorf("no bars for %s in range", symbol)
		}
		return store.ClosePrices(bars), nil

	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("-start and -end are required with -source store")
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing -start: %w", err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing -end: %w", err)
	}
	// Make the end date inclusive of its whole day.
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, nil
}

// runDemo walks one account through a deposit, a buy, a simulated market
// move, and a partial sell, printing the book after each step.
func runDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	cfgPath := fs.String("config", "config/habitlab.yaml", "config file path")
	seed := fs.Int64("seed", 0, "market rng seed (0 seeds from the clock)")
	fs.Parse(args)

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	cfg, err := loadConfig(*cfgPath, explicit)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	util.SetDefault(util.NewLogger(cfg.Logging.Level, cfg.Logging.Format))

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	m := market.New(rng)
	m.AddStock(market.NewStock("HLAB", "Habitlab Industries", cfg.Market.StartPrice))

	user := account.NewUser("demo", "demo", "Demo Trader", cfg.Backtest.FeeRate)
	if !user.Login("demo", "demo") {
		return fmt.Errorf("demo login failed")
	}
	acc := user.Account()
	acc.SetRiskManager(account.NewRiskManager(cfg.Trading.MaxPositionPct))
	acc.Deposit(cfg.Backtest.InitialCash)
	fmt.Printf("Welcome, %s. Balance: %s\n", user.DisplayName, report.FormatMoney(acc.Balance()))

	buyID := acc.PlaceOrder("HLAB", account.SideBuy, 10)
	if err := acc.ExecuteOrder(buyID, m); err != nil {
		return fmt.Errorf("executing buy: %w", err)
	}
	printBook(acc, m)

	m.SimulateTick()
	stock := m.Stock("HLAB")
	fmt.Printf("\nMarket moved: HLAB %s (%+.2f%%)\n",
		report.FormatMoney(stock.CurrentPrice()), stock.ChangeRate())

	sellID := acc.PlaceOrder("HLAB", account.SideSell, 5)
	if err := acc.ExecuteOrder(sellID, m); err != nil {
		return fmt.Errorf("executing sell: %w", err)
	}
	printBook(acc, m)

	fmt.Printf("\nTransactions: %d\n", len(acc.Transactions()))
	return nil
}

func printBook(acc *account.Account, m *market.Market) {
	fmt.Printf("Balance: %s  Portfolio: %s  Total: %s\n",
		report.FormatMoney(acc.Balance()),
		report.FormatMoney(acc.PortfolioValue(m)),
		report.FormatMoney(acc.TotalAssetValue(m)))
	for symbol, pos := range acc.Positions() {
		fmt.Printf("  %s: %d shares @ avg %s\n",
			symbol, pos.Shares, report.FormatMoney(pos.AvgCost))
	}
}
