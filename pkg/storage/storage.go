package storage

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hancao97/hanai-wealth/pkg/board"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS crawl_runs (
  run_date     TEXT PRIMARY KEY,
  fetched_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  record_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS board_counts (
  run_date TEXT NOT NULL,
  board    TEXT NOT NULL,
  count    INTEGER NOT NULL,
  PRIMARY KEY (run_date, board)
);
CREATE INDEX IF NOT EXISTS idx_runs_fetched ON crawl_runs(fetched_at);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// RecordRun stores one completed crawl. Re-crawling the same date
// replaces that date's row and its board distribution, matching the
// overwrite semantics of the snapshot files themselves.
func (d *DB) RecordRun(ctx context.Context, runDate string, recordCount int, boards map[board.Board]int) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO crawl_runs(run_date, fetched_at, record_count) VALUES(?,?,?)
		 ON CONFLICT(run_date) DO UPDATE SET fetched_at=excluded.fetched_at, record_count=excluded.record_count`,
		runDate, time.Now().UTC(), recordCount); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM board_counts WHERE run_date = ?`, runDate); err != nil {
		return err
	}
	for b, count := range boards {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO board_counts(run_date, board, count) VALUES(?,?,?)`,
			runDate, string(b), count); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListRuns returns all recorded crawls, newest run date first.
func (d *DB) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT run_date, fetched_at, record_count FROM crawl_runs ORDER BY run_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunDate, &r.FetchedAt, &r.RecordCount); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// BoardCounts returns the per-board distribution of one run date.
func (d *DB) BoardCounts(ctx context.Context, runDate string) ([]BoardCount, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT run_date, board, count FROM board_counts WHERE run_date = ? ORDER BY board`, runDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []BoardCount
	for rows.Next() {
		var c BoardCount
		var b string
		if err := rows.Scan(&c.RunDate, &b, &c.Count); err != nil {
			return nil, err
		}
		c.Board = board.Board(b)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
