package models

import "time"

// Issue state constants.
const (
	IssueStateOpen   = "open"
	IssueStateClosed = "closed"
)

// PullRequest state constants.
const (
	PullRequestStateOpen   = "open"
	PullRequestStateClosed = "closed"
	PullRequestStateMerged = "merged"
)

// QueueItem is a single pending queue file awaiting promotion to an issue.
type QueueItem struct {
	Path      string
	Name      string
	Category  Category
	CreatedAt time.Time
}

// Issue is a read-only snapshot of a GitHub issue. Relay creates new issues
// but never edits existing bodies, except to repair an unsafe gap-analysis
// body.
type Issue struct {
	Number        int
	Title         string
	Body          string
	Category      Category
	State         string
	IsGapAnalysis bool
	URL           string
	Assignees     []string
	Labels        []string
	CreatedAt     time.Time
}

// PullRequest is a read-only snapshot of a GitHub pull request, fetched fresh
// per invocation. The only mutation relay performs is the single merge call
// (plus the best-effort draft flip and branch delete around it).
type PullRequest struct {
	Number             int
	Title              string
	Body               string
	Category           Category
	State              string
	IsDraft            bool
	HasReviewRequested bool
	IsConflicted       bool
	BaseBranch         string
	HeadBranch         string
	URL                string
	CreatedAt          time.Time

	// SourceIssueNumber is the issue this PR closes, 0 if unlinked.
	SourceIssueNumber int
}

// DiscussionItem is one entry of a PR's discussion: the description, a review,
// or a comment, in chronological order.
type DiscussionItem struct {
	Kind      string // "comment" or "review"
	Author    string
	Body      string
	URL       string
	CreatedAt time.Time
}
