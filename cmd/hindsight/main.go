package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"Hindsight/internal/collector"
	"Hindsight/internal/config"
	"Hindsight/internal/labeler"
	"Hindsight/internal/model"
	"Hindsight/internal/recorder"
	"Hindsight/internal/report"
	"Hindsight/internal/scheduler"
	"Hindsight/internal/series"
	"Hindsight/internal/simulate"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		cfgPath   = flag.String("config", "configs/config.yaml", "path to config file")
		symbol    = flag.String("symbol", "", "stock symbol")
		beginDate = flag.String("begin", "", "simulation begin date (YYYY-MM-DD)")
		endDate   = flag.String("end", "", "simulation end date (YYYY-MM-DD)")
		stockData = flag.String("stock-data", "", "path to a saved daily price payload (skips fetching)")
		labels    = flag.Bool("labels", false, "build rolling-window training labels instead of a single run")
		daemon    = flag.Bool("daemon", false, "run the cron scheduler over the configured symbols")
	)
	flag.Parse()

	// .env for the API key and friends; absence is fine.
	_ = godotenv.Load()

	if v := os.Getenv("CONFIG_PATH"); v != "" && *cfgPath == "configs/config.yaml" {
		*cfgPath = v
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	engine, err := simulate.New(cfg.Params())
	if err != nil {
		log.Fatalf("[FATAL] init engine: %v", err)
	}
	gen, err := labeler.NewGenerator(engine, cfg.Policy(), cfg.Label.WindowDays)
	if err != nil {
		log.Fatalf("[FATAL] init label generator: %v", err)
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	if *daemon {
		runDaemon(cfg, engine, gen, rec)
		return
	}

	if *symbol == "" && *stockData == "" {
		log.Fatal("[FATAL] -symbol or -stock-data is required (or use -daemon)")
	}

	prices, err := loadSeries(cfg, *symbol, *stockData)
	if err != nil {
		log.Fatalf("[FATAL] load price series: %v", err)
	}
	log.Printf("[INFO] loaded %d bars for %s (%s -> %s)", prices.Len(), prices.Symbol,
		prices.First().Date.Format(series.DateLayout), prices.Last().Date.Format(series.DateLayout))

	if *labels {
		rows, err := gen.Build(prices)
		if err != nil {
			log.Fatalf("[FATAL] build labels: %v", err)
		}
		fmt.Print(report.FormatLabelSummary(prices.Symbol, rows))
		if err := rec.RecordLabels(prices.Symbol, rows); err != nil {
			log.Printf("[ERROR] record labels: %v", err)
		}
		return
	}

	if *beginDate == "" || *endDate == "" {
		log.Fatal("[FATAL] -begin and -end are required for a single run")
	}
	begin, err := series.ParseDate(*beginDate)
	if err != nil {
		log.Fatalf("[FATAL] parse begin date: %v", err)
	}
	end, err := series.ParseDate(*endDate)
	if err != nil {
		log.Fatalf("[FATAL] parse end date: %v", err)
	}

	res, err := engine.Run(prices, begin, end)
	if err != nil {
		log.Fatalf("[FATAL] simulation: %v", err)
	}
	fmt.Print(report.FormatRunReport(res))
	if err := rec.RecordRun(recorder.NewRunRecord(res)); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

// loadSeries resolves the price data source: an explicit file, then the local
// snapshot cache, then a live fetch.
func loadSeries(cfg *config.Config, symbol, stockData string) (*model.PriceSeries, error) {
	if stockData != "" {
		prices, err := series.ParseFile(stockData)
		if err != nil {
			return nil, err
		}
		if prices.Symbol == "" {
			prices.Symbol = symbol
		}
		return prices, nil
	}

	cache, err := collector.NewSnapshotCache(cfg.DataSource.CacheDir)
	if err != nil {
		return nil, err
	}
	if prices, err := collector.NewFileFetcher(cache).FetchDailySeries(symbol); err == nil {
		log.Printf("[INFO] using cached snapshot %s", cache.Path(symbol))
		return prices, nil
	}

	if cfg.DataSource.APIKey == "" {
		return nil, fmt.Errorf("no cached snapshot for %s and data_source.api_key is not set", symbol)
	}
	fetcher := collector.NewAlphaVantageFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cache)
	log.Printf("[INFO] fetching %s from %s", symbol, fetcher.Name())
	return fetcher.FetchDailySeries(symbol)
}

func runDaemon(cfg *config.Config, engine *simulate.Engine, gen *labeler.Generator, rec recorder.Recorder) {
	if len(cfg.DataSource.Symbols) == 0 {
		log.Fatal("[FATAL] daemon mode needs data_source.symbols")
	}
	if cfg.DataSource.APIKey == "" {
		log.Fatal("[FATAL] daemon mode needs data_source.api_key")
	}

	cache, err := collector.NewSnapshotCache(cfg.DataSource.CacheDir)
	if err != nil {
		log.Fatalf("[FATAL] init snapshot cache: %v", err)
	}
	fetcher := collector.NewAlphaVantageFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cache)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	sched := scheduler.NewScheduler(fetcher, engine, gen, rec, cfg.DataSource.Symbols, cfg.Label.WindowDays)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.LabelCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing refresh task now")
		go sched.RunRefreshNow()
	}

	log.Println("[INFO] hindsight daemon is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}
