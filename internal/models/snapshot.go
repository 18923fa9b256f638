package models

import "time"

// SnapshotCounts summarizes the external state the stage was derived from.
type SnapshotCounts struct {
	Pending                  int
	PendingDevelopment       int
	PendingCapabilityUpdates int
	PendingExcluded          int
	OpenIssues               int
	OpenPullRequests         int
	OpenGapAnalysisIssues    int
	ReadyPullRequests        int
}

// Focus identifies the specific issue or PR the current stage is working.
type Focus struct {
	Title             string
	IssueNumber       int
	IssueURL          string
	PullRequestNumber int
	PullRequestURL    string
	QueuePath         string
}

// StageSnapshot is the main output contract of the engine: one derived stage
// plus the evidence it was derived from. It is recomputed fresh on every call
// and never persisted.
type StageSnapshot struct {
	Stage       Stage
	StageLabel  string
	StepIndex   int
	Focus       *Focus
	Counts      SnapshotCounts
	LastAction  *ActionEvent
	Warnings    []string
	GeneratedAt time.Time
}
