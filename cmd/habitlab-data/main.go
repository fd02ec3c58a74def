package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habitlab/internal/config"
	"habitlab/internal/gather"
	"habitlab/internal/store"
)

func main() {
	backend := flag.String("store", "parquet", "store backend: parquet or sqlite")
	endStr := flag.String("end", "", "end date (YYYY-MM-DD), defaults to today")
	flag.Parse()

	cfgPath := "config/habitlab.yaml"
	if p := os.Getenv("HABITLAB_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Dual logger: stdout + /tmp log file.
	logFileName := fmt.Sprintf("/tmp/habitlab-data-%s.log", time.Now().Format("2006-01-02"))
	logFile, err := os.Create(logFileName)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	w := io.MultiWriter(os.Stdout, logFile)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	var bs store.BarStore
	switch *backend {
	case "parquet":
		bs = store.NewParquetStore(cfg.Storage.DataDir)
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open sqlite store: %v", err)
		}
		defer s.Close()
		bs = s
	default:
		log.Fatalf("unknown store backend %q", *backend)
	}

	start, err := time.Parse("2006-01-02", cfg.Gather.StartDate)
	if err != nil {
		log.Fatalf("invalid gather start_date %q: %v", cfg.Gather.StartDate, err)
	}
	end := time.Now()
	if *endStr != "" {
		end, err = time.Parse("2006-01-02", *endStr)
		if err != nil {
			log.Fatalf("invalid -end date %q: %v", *endStr, err)
		}
	}

	gatherer := gather.NewDailyBarGatherer(
		cfg.Alpaca.APIKey,
		cfg.Alpaca.APISecret,
		cfg.Alpaca.DataURL,
		bs,
		cfg.Gather.Symbols,
		gather.DateRange{Start: start, End: end},
		100,
		cfg.Gather.RateLimitPerMin,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("starting habitlab-data", "logFile", logFileName, "store", *backend, "symbols", len(cfg.Gather.Symbols))
	if err := gatherer.Run(ctx); err != nil {
		log.Fatalf("gather error: %v", err)
	}
}
