package secondary

import "context"

// ActionRecord is the persisted form of a ledger event.
type ActionRecord struct {
	ID                string
	Kind              string
	Summary           string
	QueueID           string
	IssueNumber       int
	PullRequestNumber int
	CreatedAt         string
}

// ActionLedger records successful pipeline actions. It is an audit trail for
// the history command and the snapshot's lastAction field; the stage
// derivation itself never reads it.
type ActionLedger interface {
	// Record persists one event.
	Record(ctx context.Context, record *ActionRecord) error

	// List returns the most recent events, newest first.
	List(ctx context.Context, limit int) ([]*ActionRecord, error)

	// Latest returns the most recent event, or nil if none exists.
	Latest(ctx context.Context) (*ActionRecord, error)

	// FindPromotion returns the promotion event for a queue file, or nil.
	// Used to detect a retried promotion after a crash.
	FindPromotion(ctx context.Context, queueID string) (*ActionRecord, error)
}
