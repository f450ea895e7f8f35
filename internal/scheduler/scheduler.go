package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"Hindsight/internal/collector"
	"Hindsight/internal/labeler"
	"Hindsight/internal/recorder"
	"Hindsight/internal/report"
	"Hindsight/internal/simulate"
)

// Scheduler runs the periodic refresh and label-rebuild tasks in daemon mode.
// A failure for one symbol is logged and never aborts the rest of the batch.
type Scheduler struct {
	Cron       *cron.Cron
	Fetcher    collector.Fetcher
	Engine     *simulate.Engine
	Generator  *labeler.Generator
	Recorder   recorder.Recorder
	Symbols    []string
	WindowDays int
}

// NewScheduler creates a new Scheduler.
func NewScheduler(fetcher collector.Fetcher, engine *simulate.Engine, gen *labeler.Generator,
	rec recorder.Recorder, symbols []string, windowDays int) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Fetcher:    fetcher,
		Engine:     engine,
		Generator:  gen,
		Recorder:   rec,
		Symbols:    symbols,
		WindowDays: windowDays,
	}
}

// RegisterAll registers the refresh and label tasks.
func (s *Scheduler) RegisterAll(refreshCron, labelCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(labelCron, s.labelTask); err != nil {
		return fmt.Errorf("register label task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (for RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Printf("[INFO] running refresh task for %d symbols", len(s.Symbols))
	for _, symbol := range s.Symbols {
		if err := s.refreshSymbol(symbol); err != nil {
			log.Printf("[ERROR] refresh %s: %v", symbol, err)
		}
	}
}

// refreshSymbol fetches the latest history and simulates the trailing window.
func (s *Scheduler) refreshSymbol(symbol string) error {
	prices, err := s.Fetcher.FetchDailySeries(symbol)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	if prices.Len() < 2 {
		return fmt.Errorf("not enough bars (%d)", prices.Len())
	}

	end := prices.Last().Date
	begin := end.AddDate(0, 0, -s.WindowDays)
	if begin.Before(prices.First().Date) {
		begin = prices.First().Date
	}

	res, err := s.Engine.Run(prices, begin, end)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	log.Printf("[INFO] refresh result:\n%s", report.FormatRunReport(res))
	if err := s.Recorder.RecordRun(recorder.NewRunRecord(res)); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func (s *Scheduler) labelTask() {
	log.Printf("[INFO] running label task for %d symbols", len(s.Symbols))
	for _, symbol := range s.Symbols {
		if err := s.labelSymbol(symbol); err != nil {
			log.Printf("[ERROR] label %s: %v", symbol, err)
		}
	}
}

// labelSymbol rebuilds the rolling-window training rows for one symbol.
func (s *Scheduler) labelSymbol(symbol string) error {
	prices, err := s.Fetcher.FetchDailySeries(symbol)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	rows, err := s.Generator.Build(prices)
	if err != nil {
		return fmt.Errorf("build labels: %w", err)
	}
	log.Printf("[INFO] label result:\n%s", report.FormatLabelSummary(symbol, rows))
	if err := s.Recorder.RecordLabels(symbol, rows); err != nil {
		return fmt.Errorf("record labels: %w", err)
	}
	return nil
}
