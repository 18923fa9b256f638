// Package github implements the GitHub gateway on top of the gh CLI. gh
// carries authentication and API plumbing; this adapter shells out with
// --json and maps the output onto the domain models.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/example/relay/internal/models"
	"github.com/example/relay/internal/ports/secondary"
)

const listLimit = "200"

var issueFields = "number,title,body,state,url,labels,assignees,createdAt"
var prFields = "number,title,body,state,url,isDraft,mergeable,reviewRequests,reviewDecision,baseRefName,headRefName,labels,createdAt,closingIssuesReferences"

// runner executes a gh invocation and returns its stdout.
type runner func(ctx context.Context, args ...string) ([]byte, error)

// Gateway implements secondary.GitHubGateway via the gh CLI.
type Gateway struct {
	repo    string
	timeout time.Duration
	run     runner
}

// NewGateway creates a gateway for one "owner/repo" target. Each gh call is
// bounded by the timeout.
func NewGateway(repo string, timeout time.Duration) *Gateway {
	g := &Gateway{repo: repo, timeout: timeout}
	g.run = g.runGh
	return g
}

func (g *Gateway) runGh(ctx context.Context, args ...string) ([]byte, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "gh", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("gh %s: %s", args[0], msg)
	}
	return stdout.Bytes(), nil
}

func (g *Gateway) upstream(op string, err error) error {
	return &secondary.UpstreamError{Op: op, Err: err}
}

// ListOpenIssues returns all open issues in the target repository.
func (g *Gateway) ListOpenIssues(ctx context.Context) ([]models.Issue, error) {
	out, err := g.run(ctx, "issue", "list", "--repo", g.repo, "--state", "open", "--limit", listLimit, "--json", issueFields)
	if err != nil {
		return nil, g.upstream("list issues", err)
	}

	var raw []ghIssue
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, g.upstream("list issues", fmt.Errorf("failed to parse gh output: %w", err))
	}

	issues := make([]models.Issue, 0, len(raw))
	for _, r := range raw {
		issues = append(issues, issueFromGh(r))
	}
	return issues, nil
}

// CreateIssue creates an issue and returns a fresh snapshot of it.
func (g *Gateway) CreateIssue(ctx context.Context, req secondary.CreateIssueRequest) (models.Issue, error) {
	args := []string{"issue", "create", "--repo", g.repo, "--title", req.Title, "--body", req.Body}
	for _, label := range req.Labels {
		args = append(args, "--label", label)
	}

	out, err := g.run(ctx, args...)
	if err != nil {
		return models.Issue{}, g.upstream("create issue", err)
	}

	number, err := issueNumberFromURL(strings.TrimSpace(string(out)))
	if err != nil {
		return models.Issue{}, g.upstream("create issue", err)
	}
	return g.getIssue(ctx, number)
}

func (g *Gateway) getIssue(ctx context.Context, number int) (models.Issue, error) {
	out, err := g.run(ctx, "issue", "view", strconv.Itoa(number), "--repo", g.repo, "--json", issueFields)
	if err != nil {
		return models.Issue{}, g.upstream("view issue", err)
	}

	var raw ghIssue
	if err := json.Unmarshal(out, &raw); err != nil {
		return models.Issue{}, g.upstream("view issue", fmt.Errorf("failed to parse gh output: %w", err))
	}
	return issueFromGh(raw), nil
}

// UpdateIssueBody replaces an issue's body.
func (g *Gateway) UpdateIssueBody(ctx context.Context, number int, body string) error {
	_, err := g.run(ctx, "issue", "edit", strconv.Itoa(number), "--repo", g.repo, "--body", body)
	if err != nil {
		return g.upstream("edit issue", err)
	}
	return nil
}

// AddAssignees assigns users to an issue.
func (g *Gateway) AddAssignees(ctx context.Context, number int, assignees []string) error {
	if len(assignees) == 0 {
		return nil
	}
	_, err := g.run(ctx, "issue", "edit", strconv.Itoa(number), "--repo", g.repo, "--add-assignee", strings.Join(assignees, ","))
	if err != nil {
		return g.upstream("assign issue", err)
	}
	return nil
}

// ListOpenPullRequests returns all open PRs with their readiness signals.
func (g *Gateway) ListOpenPullRequests(ctx context.Context) ([]models.PullRequest, error) {
	out, err := g.run(ctx, "pr", "list", "--repo", g.repo, "--state", "open", "--limit", listLimit, "--json", prFields)
	if err != nil {
		return nil, g.upstream("list pull requests", err)
	}

	var raw []ghPullRequest
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, g.upstream("list pull requests", fmt.Errorf("failed to parse gh output: %w", err))
	}

	prs := make([]models.PullRequest, 0, len(raw))
	for _, r := range raw {
		prs = append(prs, pullRequestFromGh(r))
	}
	return prs, nil
}

// GetPullRequest returns a fresh snapshot of one PR.
func (g *Gateway) GetPullRequest(ctx context.Context, number int) (models.PullRequest, error) {
	out, err := g.run(ctx, "pr", "view", strconv.Itoa(number), "--repo", g.repo, "--json", prFields)
	if err != nil {
		return models.PullRequest{}, g.upstream("view pull request", err)
	}

	var raw ghPullRequest
	if err := json.Unmarshal(out, &raw); err != nil {
		return models.PullRequest{}, g.upstream("view pull request", fmt.Errorf("failed to parse gh output: %w", err))
	}
	return pullRequestFromGh(raw), nil
}

// ListDiscussion returns a PR's comments and reviews in chronological order.
func (g *Gateway) ListDiscussion(ctx context.Context, number int) ([]models.DiscussionItem, error) {
	out, err := g.run(ctx, "pr", "view", strconv.Itoa(number), "--repo", g.repo, "--json", "comments,reviews")
	if err != nil {
		return nil, g.upstream("view pull request discussion", err)
	}

	var raw ghDiscussion
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, g.upstream("view pull request discussion", fmt.Errorf("failed to parse gh output: %w", err))
	}
	return discussionFromGh(raw), nil
}

// MergePullRequest merges one PR and returns the merge commit SHA.
func (g *Gateway) MergePullRequest(ctx context.Context, number int, method string) (string, error) {
	args := []string{"pr", "merge", strconv.Itoa(number), "--repo", g.repo}
	switch method {
	case "merge":
		args = append(args, "--merge")
	case "rebase":
		args = append(args, "--rebase")
	default:
		args = append(args, "--squash")
	}

	if _, err := g.run(ctx, args...); err != nil {
		return "", g.upstream("merge pull request", err)
	}

	// The merge command does not report the commit; fetch it separately.
	out, err := g.run(ctx, "pr", "view", strconv.Itoa(number), "--repo", g.repo, "--json", "mergeCommit")
	if err != nil {
		return "", g.upstream("view merge commit", err)
	}
	var raw struct {
		MergeCommit struct {
			OID string `json:"oid"`
		} `json:"mergeCommit"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		return "", g.upstream("view merge commit", fmt.Errorf("failed to parse gh output: %w", err))
	}
	return raw.MergeCommit.OID, nil
}

// MarkReadyForReview flips a draft PR to ready.
func (g *Gateway) MarkReadyForReview(ctx context.Context, number int) error {
	if _, err := g.run(ctx, "pr", "ready", strconv.Itoa(number), "--repo", g.repo); err != nil {
		return g.upstream("mark pull request ready", err)
	}
	return nil
}

// DeleteBranch deletes a head branch.
func (g *Gateway) DeleteBranch(ctx context.Context, branch string) error {
	ref := fmt.Sprintf("repos/%s/git/refs/heads/%s", g.repo, branch)
	if _, err := g.run(ctx, "api", "-X", "DELETE", ref); err != nil {
		return g.upstream("delete branch", err)
	}
	return nil
}

// issueNumberFromURL extracts the trailing number from a gh issue URL.
func issueNumberFromURL(url string) (int, error) {
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		return 0, fmt.Errorf("unexpected issue URL %q", url)
	}
	number, err := strconv.Atoi(url[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("unexpected issue URL %q", url)
	}
	return number, nil
}

// Ensure Gateway implements the interface
var _ secondary.GitHubGateway = (*Gateway)(nil)
