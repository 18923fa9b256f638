package db

// SchemaSQL is the complete schema for the relay action ledger.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests load it
// via GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so any
// drift between repository code and schema fails immediately with
// "no such column" at development time.
const SchemaSQL = `
-- Action events (audit trail of successful pipeline actions)
CREATE TABLE IF NOT EXISTS action_events (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL CHECK(kind IN (
		'issue_promoted',
		'gap_issue_created',
		'gap_issue_repaired',
		'pr_merged',
		'capability_issue_created'
	)),
	summary TEXT NOT NULL,
	queue_id TEXT,
	issue_number INTEGER,
	pull_number INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_action_events_created_at ON action_events(created_at);
CREATE INDEX IF NOT EXISTS idx_action_events_queue_id ON action_events(queue_id);
`

// GetSchemaSQL returns the authoritative schema for tests and tooling.
func GetSchemaSQL() string {
	return SchemaSQL
}
