// Package sqlite_test contains integration tests for SQLite repositories.
//
// The schema is loaded in one place, via db.GetSchemaSQL(), so tests cannot
// drift from the authoritative schema in internal/db/schema.go.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/relay/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedEvent inserts an event with an explicit timestamp so ordering tests
// are deterministic.
func seedEvent(t *testing.T, testDB *sql.DB, id, kind, summary, queueID, createdAt string) {
	t.Helper()

	var qid any
	if queueID != "" {
		qid = queueID
	}
	_, err := testDB.Exec(
		"INSERT INTO action_events (id, kind, summary, queue_id, created_at) VALUES (?, ?, ?, ?, ?)",
		id, kind, summary, qid, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
}
