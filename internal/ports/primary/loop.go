// Package primary defines the driving ports: the four idempotent operations
// the engine exposes to callers (CLI today, any other surface tomorrow),
// plus the action-history service. Each operation runs to completion before
// returning and returns a structured result or a typed failure, never an
// uncaught panic for expected conditions like an empty queue.
package primary

import (
	"context"

	"github.com/example/relay/internal/models"
)

// SnapshotService derives the pipeline's current stage from fresh external
// state. Calling it is always safe and never mutates anything.
type SnapshotService interface {
	// GetStageSnapshot fetches queue and GitHub state and classifies it.
	GetStageSnapshot(ctx context.Context) (*models.StageSnapshot, error)
}

// GapService guarantees exactly one open, correctly-shaped gap-analysis
// issue exists.
type GapService interface {
	// EnsureGapAnalysisIssue is idempotent: it creates the issue when
	// absent, repairs a known-unsafe legacy body, and otherwise returns
	// the existing issue's identity with Created=false.
	EnsureGapAnalysisIssue(ctx context.Context) (*EnsureGapResult, error)
}

// PromoteService converts the oldest queued file into a GitHub issue.
type PromoteService interface {
	// PromoteNextQueueItem promotes exactly one item per call. Returns
	// queue.ErrEmptyQueue (wrapped) when nothing is pending.
	PromoteNextQueueItem(ctx context.Context) (*PromoteResult, error)
}

// MergeService decides whether a pull request is safe to merge and executes
// at most one merge per call.
type MergeService interface {
	// MergeNextReadyPullRequest merges the highest-priority ready PR.
	// Returns merge.ErrNoReadyPullRequest (wrapped) when nothing
	// qualifies. A successful development merge also spawns the
	// capability-update follow-up issue.
	MergeNextReadyPullRequest(ctx context.Context) (*MergeResult, error)

	// ListReadiness evaluates every open PR without merging anything.
	ListReadiness(ctx context.Context) ([]PullRequestReadiness, error)
}

// LoopService composes the four public actions behind one facade.
type LoopService interface {
	SnapshotService
	GapService
	PromoteService
	MergeService
}

// LedgerService exposes the recorded action history.
type LedgerService interface {
	// History returns the most recent actions, newest first.
	History(ctx context.Context, limit int) ([]*models.ActionEvent, error)
}

// EnsureGapResult reports the identity of the open gap-analysis issue.
type EnsureGapResult struct {
	Created     bool
	Repaired    bool
	IssueNumber int
	IssueURL    string
	Warnings    []string
}

// PromoteResult reports a completed queue promotion.
type PromoteResult struct {
	IssueNumber   int
	IssueURL      string
	IssueTitle    string
	QueuePath     string
	ProcessedPath string

	// Created is false when the item had already been promoted and only
	// the file move was outstanding.
	Created  bool
	Warnings []string
}

// MergeResult reports a completed merge and its follow-up, if any.
type MergeResult struct {
	PullRequestNumber int
	Category          models.Category
	MergeSHA          string
	BranchDeleted     bool

	// CapabilityIssueNumber is set when the merge was a development PR
	// and the follow-up issue was created.
	CapabilityIssueNumber int
	CapabilityIssueURL    string
	Warnings              []string
}

// PullRequestReadiness pairs a PR with its readiness evaluation, for
// dry-run inspection.
type PullRequestReadiness struct {
	PullRequest models.PullRequest
	Ready       bool
	Reasons     []string
}
