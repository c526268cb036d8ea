// Package store persists historical comparator runs to SQLite, grounded on
// the teacher's internal/db package's open/migrate/insert-and-query shape.
// It is not named by spec.md's core modules. It also keeps an append-only
// log of raw order JSON; the pattern analyzer (C10) and slotting optimizer
// (C11) take their orders as arguments and do not read this log.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/RomainR99/Forge-Optipick/internal/logger"
)

// Store wraps a SQLite database connection holding run history.
type Store struct {
	sql *sql.DB
}

func defaultPath() string {
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "optipick.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "optipick.db")
}

// Open opens (or creates) the SQLite database at path (defaultPath() if
// empty) and runs migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath()
	}
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	s := &Store{sql: sqlDB}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.sql.Close()
}

func (s *Store) migrate() error {
	version := 0
	s.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := s.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS comparator_runs (
				id            INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp     TEXT NOT NULL,
				strategy      TEXT NOT NULL,
				order_count   INTEGER NOT NULL,
				assigned      INTEGER NOT NULL,
				total_distance INTEGER NOT NULL,
				total_cost    REAL NOT NULL,
				detail_json   TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS orders_seen (
				id            INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp     TEXT NOT NULL,
				order_json    TEXT NOT NULL
			);

			INSERT INTO schema_version (version) VALUES (1);
		`)
		return err
	}
	return nil
}

// RunRecord is one persisted strategy outcome of a comparator invocation.
type RunRecord struct {
	ID            int64
	Timestamp     string
	Strategy      string
	OrderCount    int
	Assigned      int
	TotalDistance int
	TotalCost     float64
	Detail        json.RawMessage
}

// InsertRun persists one strategy's comparator outcome and returns its id.
func (s *Store) InsertRun(strategy string, orderCount, assigned, totalDistance int, totalCost float64, detail any) (int64, error) {
	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return 0, fmt.Errorf("marshal detail: %w", err)
	}
	result, err := s.sql.Exec(
		`INSERT INTO comparator_runs (timestamp, strategy, order_count, assigned, total_distance, total_cost, detail_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Format(time.RFC3339), strategy, orderCount, assigned, totalDistance, totalCost, string(detailJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return result.LastInsertId()
}

// RecentRuns returns the last limit comparator_runs rows (newest first).
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.sql.Query(
		`SELECT id, timestamp, strategy, order_count, assigned, total_distance, total_cost, detail_json
		 FROM comparator_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var detail string
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Strategy, &r.OrderCount, &r.Assigned, &r.TotalDistance, &r.TotalCost, &detail); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		r.Detail = json.RawMessage(detail)
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecordOrder appends order (serialized as JSON) to the append-only
// historical order log.
func (s *Store) RecordOrder(order any) error {
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	_, err = s.sql.Exec(
		`INSERT INTO orders_seen (timestamp, order_json) VALUES (?, ?)`,
		time.Now().Format(time.RFC3339), string(orderJSON),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// HistoricalOrders returns every order JSON blob recorded via RecordOrder,
// oldest first.
func (s *Store) HistoricalOrders() ([]json.RawMessage, error) {
	rows, err := s.sql.Query(`SELECT order_json FROM orders_seen ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query historical orders: %w", err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		out = append(out, json.RawMessage(raw))
	}
	return out, rows.Err()
}
