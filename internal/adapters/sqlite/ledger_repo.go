// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/relay/internal/ports/secondary"
)

// LedgerRepository implements secondary.ActionLedger with SQLite.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new SQLite action-ledger repository.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Record persists one action event. A missing ID is filled with a fresh UUID.
func (r *LedgerRepository) Record(ctx context.Context, record *secondary.ActionRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	var queueID sql.NullString
	if record.QueueID != "" {
		queueID = sql.NullString{String: record.QueueID, Valid: true}
	}
	var issueNumber, pullNumber sql.NullInt64
	if record.IssueNumber != 0 {
		issueNumber = sql.NullInt64{Int64: int64(record.IssueNumber), Valid: true}
	}
	if record.PullRequestNumber != 0 {
		pullNumber = sql.NullInt64{Int64: int64(record.PullRequestNumber), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO action_events (id, kind, summary, queue_id, issue_number, pull_number) VALUES (?, ?, ?, ?, ?, ?)",
		record.ID, record.Kind, record.Summary, queueID, issueNumber, pullNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to record action event: %w", err)
	}

	return nil
}

// List returns the most recent events, newest first.
func (r *LedgerRepository) List(ctx context.Context, limit int) ([]*secondary.ActionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, kind, summary, queue_id, issue_number, pull_number, created_at FROM action_events ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list action events: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ActionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate action events: %w", err)
	}

	return records, nil
}

// Latest returns the most recent event, or nil if the ledger is empty.
func (r *LedgerRepository) Latest(ctx context.Context) (*secondary.ActionRecord, error) {
	records, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// FindPromotion returns the promotion event for a queue file, or nil.
func (r *LedgerRepository) FindPromotion(ctx context.Context, queueID string) (*secondary.ActionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, kind, summary, queue_id, issue_number, pull_number, created_at FROM action_events WHERE kind = 'issue_promoted' AND queue_id = ? ORDER BY created_at DESC LIMIT 1",
		queueID,
	)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*secondary.ActionRecord, error) {
	var (
		queueID     sql.NullString
		issueNumber sql.NullInt64
		pullNumber  sql.NullInt64
		createdAt   time.Time
	)

	record := &secondary.ActionRecord{}
	err := s.Scan(&record.ID, &record.Kind, &record.Summary, &queueID, &issueNumber, &pullNumber, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan action event: %w", err)
	}

	record.QueueID = queueID.String
	record.IssueNumber = int(issueNumber.Int64)
	record.PullRequestNumber = int(pullNumber.Int64)
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure LedgerRepository implements the interface
var _ secondary.ActionLedger = (*LedgerRepository)(nil)
