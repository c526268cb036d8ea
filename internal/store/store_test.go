package store

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	s := &Store{sql: sqlDB}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestInsertAndRecentRunsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	defer s.Close()

	id, err := s.InsertRun("first_fit", 10, 8, 400, 35.5, map[string]int{"late": 1})
	if err != nil {
		t.Fatalf("InsertRun: %v", err)
	}
	if id <= 0 {
		t.Fatal("InsertRun returned a non-positive id")
	}

	runs, err := s.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns len = %d, want 1", len(runs))
	}
	if runs[0].Strategy != "first_fit" || runs[0].Assigned != 8 {
		t.Errorf("run = %+v, want strategy=first_fit assigned=8", runs[0])
	}
}

func TestRecordOrderAndHistoricalOrdersPreserveInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	defer s.Close()

	if err := s.RecordOrder(map[string]string{"id": "O1"}); err != nil {
		t.Fatalf("RecordOrder: %v", err)
	}
	if err := s.RecordOrder(map[string]string{"id": "O2"}); err != nil {
		t.Fatalf("RecordOrder: %v", err)
	}

	orders, err := s.HistoricalOrders()
	if err != nil {
		t.Fatalf("HistoricalOrders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("len(orders) = %d, want 2", len(orders))
	}
	if string(orders[0]) != `{"id":"O1"}` || string(orders[1]) != `{"id":"O2"}` {
		t.Errorf("orders = [%s %s], want O1 then O2", orders[0], orders[1])
	}
}
