package recorder

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"Hindsight/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordRun(t *testing.T) {
	r := openTestRecorder(t)

	rec := &RunRecord{
		Symbol:        "X",
		Begin:         time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC),
		End:           time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC),
		TotalProfit:   1234.5,
		SellCount:     7,
		RemainingLots: 3,
		MaxLots:       9,
		BreachDays:    map[int]int{5: 4, 10: 1},
	}
	if err := r.RecordRun(rec); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if rec.ID == "" {
		t.Error("recorder should assign a run id")
	}

	var symbol, breach string
	var profit float64
	err := r.db.QueryRow(
		`SELECT symbol, total_profit, breach_days FROM simulation_runs WHERE id = ?`, rec.ID,
	).Scan(&symbol, &profit, &breach)
	if err != nil {
		t.Fatalf("query run: %v", err)
	}
	if symbol != "X" || profit != 1234.5 {
		t.Errorf("stored run = %s/%v, want X/1234.5", symbol, profit)
	}
	var stored map[int]int
	if err := json.Unmarshal([]byte(breach), &stored); err != nil {
		t.Fatalf("decode breach days %q: %v", breach, err)
	}
	if !reflect.DeepEqual(stored, rec.BreachDays) {
		t.Errorf("breach days = %v, want %v", stored, rec.BreachDays)
	}
}

func TestRecordLabels_ReplacesExistingDay(t *testing.T) {
	r := openTestRecorder(t)

	day := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	rows := []model.LabeledRow{
		{Date: day, Close: 100, ShouldTrade: false, TotalProfit: 100},
		{Date: day.AddDate(0, 0, 1), Close: 101, ShouldTrade: true, TotalProfit: 400},
	}
	if err := r.RecordLabels("X", rows); err != nil {
		t.Fatalf("record labels: %v", err)
	}

	// A rebuild for the same day overwrites rather than duplicating.
	rows[0].TotalProfit = 350
	rows[0].ShouldTrade = true
	if err := r.RecordLabels("X", rows[:1]); err != nil {
		t.Fatalf("re-record labels: %v", err)
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM training_rows WHERE symbol = 'X'`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("rows = %d, want 2", count)
	}

	var profit float64
	var shouldTrade int
	err := r.db.QueryRow(
		`SELECT total_profit, should_trade FROM training_rows WHERE symbol = 'X' AND date = '2022-01-03'`,
	).Scan(&profit, &shouldTrade)
	if err != nil {
		t.Fatal(err)
	}
	if profit != 350 || shouldTrade != 1 {
		t.Errorf("replaced row = %v/%d, want 350/1", profit, shouldTrade)
	}
}

func TestNewRunRecord(t *testing.T) {
	res := &model.SimulationResult{
		Symbol:        "X",
		Profits:       []float64{10, 20, 30},
		RemainingLots: []model.Lot{{PurchasePrice: 100, Shares: 10}},
		Stats: model.SimulationStats{
			MaxLotsObserved: 4,
			DepthBreachDays: map[int]int{5: 1},
		},
	}
	rec := NewRunRecord(res)
	if rec.TotalProfit != 60 || rec.SellCount != 3 || rec.RemainingLots != 1 || rec.MaxLots != 4 {
		t.Errorf("unexpected record: %+v", rec)
	}
}
