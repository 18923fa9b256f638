package models

import "time"

// Action event kinds recorded in the ledger.
const (
	EventIssuePromoted          = "issue_promoted"
	EventGapIssueCreated        = "gap_issue_created"
	EventGapIssueRepaired       = "gap_issue_repaired"
	EventPullRequestMerged      = "pr_merged"
	EventCapabilityIssueCreated = "capability_issue_created"
)

// ActionEvent is one entry of the action ledger: a successful pipeline action
// and the artifacts it touched. The ledger is an audit trail, not engine
// state; the stage derivation never depends on it.
type ActionEvent struct {
	ID                string
	Kind              string
	Summary           string
	QueueID           string
	IssueNumber       int
	PullRequestNumber int
	CreatedAt         time.Time
}
