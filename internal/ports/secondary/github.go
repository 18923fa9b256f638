// Package secondary defines the driven ports: the collaborator interfaces
// the engine consumes. Adapters in internal/adapters implement them.
package secondary

import (
	"context"
	"fmt"

	"github.com/example/relay/internal/models"
)

// GitHubGateway is the engine's view of the issue/PR repository API. All
// calls are synchronous, carry no internal retry, and surface transport
// failures as *UpstreamError.
type GitHubGateway interface {
	// ListOpenIssues returns all open issues, categorized by label.
	ListOpenIssues(ctx context.Context) ([]models.Issue, error)

	// CreateIssue creates an issue and returns its fresh snapshot.
	CreateIssue(ctx context.Context, req CreateIssueRequest) (models.Issue, error)

	// UpdateIssueBody replaces an issue's body. The engine calls this only
	// to repair an unsafe gap-analysis body.
	UpdateIssueBody(ctx context.Context, number int, body string) error

	// AddAssignees assigns users to an issue.
	AddAssignees(ctx context.Context, number int, assignees []string) error

	// ListOpenPullRequests returns all open PRs with readiness signals.
	ListOpenPullRequests(ctx context.Context) ([]models.PullRequest, error)

	// GetPullRequest returns a fresh snapshot of one PR.
	GetPullRequest(ctx context.Context, number int) (models.PullRequest, error)

	// ListDiscussion returns a PR's comments and reviews in chronological
	// order.
	ListDiscussion(ctx context.Context, number int) ([]models.DiscussionItem, error)

	// MergePullRequest merges one PR and returns the merge commit SHA.
	MergePullRequest(ctx context.Context, number int, method string) (string, error)

	// MarkReadyForReview flips a draft PR to ready.
	MarkReadyForReview(ctx context.Context, number int) error

	// DeleteBranch deletes a head branch after merge. Best-effort at the
	// call site: failures degrade to warnings.
	DeleteBranch(ctx context.Context, branch string) error
}

// CreateIssueRequest contains parameters for creating an issue. Assignee
// failures must not fail the creation; the adapter assigns separately.
type CreateIssueRequest struct {
	Title  string
	Body   string
	Labels []string
}

// UpstreamError wraps a transport or auth failure from the issue/PR
// repository API. The engine propagates it to the caller untouched and never
// retries.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("github: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
