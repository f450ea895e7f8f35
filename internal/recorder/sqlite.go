package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"Hindsight/internal/model"
)

// SQLiteRecorder persists simulation runs and training rows to a SQLite
// database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis tools can read while a label build writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS simulation_runs (
			id                TEXT PRIMARY KEY,
			timestamp         INTEGER NOT NULL,
			symbol            TEXT NOT NULL,
			begin_date        TEXT NOT NULL,
			end_date          TEXT NOT NULL,
			total_profit      REAL,
			sell_count        INTEGER,
			remaining_lots    INTEGER,
			max_lots_observed INTEGER,
			breach_days       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol ON simulation_runs(symbol, begin_date)`,

		`CREATE TABLE IF NOT EXISTS training_rows (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			date         TEXT NOT NULL,
			close        REAL,
			highest_high REAL,
			lowest_low   REAL,
			offset_close REAL,
			should_trade INTEGER,
			total_profit REAL,
			max_lots     INTEGER,
			breach_days  INTEGER
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_rows_symbol_date ON training_rows(symbol, date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	breach, err := json.Marshal(rec.BreachDays)
	if err != nil {
		return fmt.Errorf("marshal breach days: %w", err)
	}

	_, err = r.db.Exec(`INSERT INTO simulation_runs
		(id, timestamp, symbol, begin_date, end_date,
		 total_profit, sell_count, remaining_lots, max_lots_observed, breach_days)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, time.Now().Unix(), rec.Symbol,
		rec.Begin.Format("2006-01-02"), rec.End.Format("2006-01-02"),
		rec.TotalProfit, rec.SellCount, rec.RemainingLots, rec.MaxLots, string(breach),
	)
	return err
}

func (r *SQLiteRecorder) RecordLabels(symbol string, rows []model.LabeledRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin label tx: %w", err)
	}
	now := time.Now().Unix()
	for _, row := range rows {
		shouldTrade := 0
		if row.ShouldTrade {
			shouldTrade = 1
		}
		// Rebuilds replace older labels for the same day.
		if _, err := tx.Exec(`INSERT OR REPLACE INTO training_rows
			(timestamp, symbol, date, close, highest_high, lowest_low, offset_close,
			 should_trade, total_profit, max_lots, breach_days)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			now, symbol, row.Date.Format("2006-01-02"),
			row.Close, row.HighestHigh, row.LowestLow, row.OffsetClose,
			shouldTrade, row.TotalProfit, row.MaxLots, row.BreachDays,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert training row %s: %w", row.Date.Format("2006-01-02"), err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
