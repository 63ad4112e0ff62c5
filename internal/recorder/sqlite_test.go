package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insight.db")
	rec, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()

	snap := &RunSnapshot{
		RunID:           "run-1",
		StartedAt:       time.Now(),
		Elapsed:         1200 * time.Millisecond,
		PriceRecords:    600,
		EligibleSymbols: 2,
		SkippedSymbols:  1,
		BenchmarkReturn: 0.12,
		BenchmarkVol:    0.18,
		BenchmarkYears:  3.5,
	}
	require.NoError(t, rec.RecordRun(snap))

	require.NoError(t, rec.RecordSymbols([]SymbolRecord{
		{RunID: "run-1", Symbol: "AAA", Name: "Alpha Corp", Sector: "Technology",
			TotalReturn: 1.0, AnnualizedReturn: 0.41, Volatility: 0.25, Years: 2.0,
			MarketCap: 1.2e12, TrapScore: 1.5},
		{RunID: "run-1", Symbol: "BBB", Sector: "Utilities",
			AnnualizedReturn: 0.10, Years: 2.0},
	}))

	var count int
	require.NoError(t, rec.db.QueryRow(
		`SELECT COUNT(*) FROM run_symbols WHERE run_id = ?`, "run-1").Scan(&count))
	assert.Equal(t, 2, count)

	var annReturn float64
	require.NoError(t, rec.db.QueryRow(
		`SELECT benchmark_return FROM runs WHERE run_id = ?`, "run-1").Scan(&annReturn))
	assert.Equal(t, 0.12, annReturn)
}

func TestSQLiteRecorder_MigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insight.db")

	first, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}
