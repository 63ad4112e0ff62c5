package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
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

	// WAL mode so dashboards can read while a run is still writing.
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
		`CREATE TABLE IF NOT EXISTS runs (
			run_id           TEXT PRIMARY KEY,
			started_at       INTEGER NOT NULL,
			elapsed_ms       INTEGER,
			price_records    INTEGER,
			dropped_rows     INTEGER,
			eligible_symbols INTEGER,
			skipped_symbols  INTEGER,
			benchmark_return REAL,
			benchmark_vol    REAL,
			benchmark_years  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS run_symbols (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id            TEXT NOT NULL,
			symbol            TEXT NOT NULL,
			name              TEXT,
			sector            TEXT,
			total_return      REAL,
			annualized_return REAL,
			volatility        REAL,
			years             REAL,
			market_cap        REAL,
			trap_score        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_symbols_run ON run_symbols(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_run_symbols_symbol ON run_symbols(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(run_id, started_at, elapsed_ms, price_records, dropped_rows,
		 eligible_symbols, skipped_symbols,
		 benchmark_return, benchmark_vol, benchmark_years)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		snap.RunID, snap.StartedAt.Unix(), snap.Elapsed.Milliseconds(),
		snap.PriceRecords, snap.DroppedRows,
		snap.EligibleSymbols, snap.SkippedSymbols,
		snap.BenchmarkReturn, snap.BenchmarkVol, snap.BenchmarkYears,
	)
	return err
}

func (r *SQLiteRecorder) RecordSymbols(records []SymbolRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO run_symbols
		(run_id, symbol, name, sector,
		 total_return, annualized_return, volatility, years, market_cap, trap_score)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(
			rec.RunID, rec.Symbol, rec.Name, rec.Sector,
			rec.TotalReturn, rec.AnnualizedReturn, rec.Volatility,
			rec.Years, rec.MarketCap, rec.TrapScore,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s: %w", rec.Symbol, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
