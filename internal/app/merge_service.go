package app

import (
	"context"
	"fmt"

	"github.com/example/relay/internal/core/capability"
	"github.com/example/relay/internal/core/merge"
	"github.com/example/relay/internal/models"
	"github.com/example/relay/internal/ports/primary"
	"github.com/example/relay/internal/ports/secondary"
)

// MergeServiceImpl implements primary.MergeService.
type MergeServiceImpl struct {
	github         secondary.GitHubGateway
	templates      secondary.TemplateStore
	ledger         secondary.ActionLedger
	mergeMethod    string
	deleteBranches bool
	assignee       string
}

// NewMergeService creates a new merge service.
func NewMergeService(github secondary.GitHubGateway, templates secondary.TemplateStore, ledger secondary.ActionLedger, mergeMethod string, deleteBranches bool, assignee string) *MergeServiceImpl {
	return &MergeServiceImpl{
		github:         github,
		templates:      templates,
		ledger:         ledger,
		mergeMethod:    mergeMethod,
		deleteBranches: deleteBranches,
		assignee:       assignee,
	}
}

// MergeNextReadyPullRequest merges the highest-priority ready PR, at most one
// per call. The candidate is re-fetched immediately before merging so the
// decision rests on current state, not the listing snapshot.
func (s *MergeServiceImpl) MergeNextReadyPullRequest(ctx context.Context) (*primary.MergeResult, error) {
	prs, err := s.github.ListOpenPullRequests(ctx)
	if err != nil {
		return nil, err
	}

	candidate, err := merge.SelectCandidate(prs)
	if err != nil {
		return nil, err
	}

	result := &primary.MergeResult{
		PullRequestNumber: candidate.Number,
		Category:          candidate.Category,
	}

	fresh, err := s.github.GetPullRequest(ctx, candidate.Number)
	if err != nil {
		return nil, err
	}

	if merge.BlockedOnlyByDraft(fresh) {
		if err := s.github.MarkReadyForReview(ctx, fresh.Number); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to flip #%d out of draft: %v", fresh.Number, err))
		} else {
			fresh, err = s.github.GetPullRequest(ctx, fresh.Number)
			if err != nil {
				return nil, err
			}
		}
	}

	if readiness := merge.EvaluateReadiness(fresh); !readiness.Ready {
		return nil, &merge.RefusedError{Number: fresh.Number, Reasons: readiness.Reasons}
	}

	sha, err := s.github.MergePullRequest(ctx, fresh.Number, s.mergeMethod)
	if err != nil {
		return nil, err
	}
	result.MergeSHA = sha

	if err := s.ledger.Record(ctx, &secondary.ActionRecord{
		Kind:              models.EventPullRequestMerged,
		Summary:           fmt.Sprintf("merged %s PR #%d", fresh.Category, fresh.Number),
		PullRequestNumber: fresh.Number,
	}); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to record action: %v", err))
	}

	if s.deleteBranches && fresh.HeadBranch != "" {
		if err := s.github.DeleteBranch(ctx, fresh.HeadBranch); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to delete branch %s: %v", fresh.HeadBranch, err))
		} else {
			result.BranchDeleted = true
		}
	}

	if fresh.Category == models.CategoryDevelopment {
		s.triggerCapabilityUpdate(ctx, fresh, result)
	}

	return result, nil
}

// triggerCapabilityUpdate creates the capability-update follow-up issue for
// a merged development PR. The merge is already irreversible here, so every
// failure degrades to a warning instead of failing the operation; a rerun of
// the ensure path is the recovery.
func (s *MergeServiceImpl) triggerCapabilityUpdate(ctx context.Context, pr models.PullRequest, result *primary.MergeResult) {
	title := capability.TitleForPR(pr.Number)

	issues, err := s.github.ListOpenIssues(ctx)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to check for existing capability issue: %v", err))
		return
	}
	for _, issue := range issues {
		if issue.Title == title {
			result.CapabilityIssueNumber = issue.Number
			result.CapabilityIssueURL = issue.URL
			return
		}
	}

	template, err := s.templates.LoadCapabilityUpdateTemplate()
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("capability-update issue not created: %v", err))
		return
	}

	discussion, err := s.github.ListDiscussion(ctx, pr.Number)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("PR #%d discussion unavailable: %v", pr.Number, err))
		discussion = nil
	}

	issue, err := s.github.CreateIssue(ctx, secondary.CreateIssueRequest{
		Title:  title,
		Body:   capability.RenderIssueBody(template, pr, discussion),
		Labels: []string{models.LabelCapability},
	})
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("capability-update issue not created: %v", err))
		return
	}
	result.CapabilityIssueNumber = issue.Number
	result.CapabilityIssueURL = issue.URL
	result.Warnings = append(result.Warnings, assignBestEffort(ctx, s.github, issue.Number, s.assignee)...)

	if err := s.ledger.Record(ctx, &secondary.ActionRecord{
		Kind:              models.EventCapabilityIssueCreated,
		Summary:           fmt.Sprintf("created capability-update issue #%d for PR #%d", issue.Number, pr.Number),
		IssueNumber:       issue.Number,
		PullRequestNumber: pr.Number,
	}); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to record action: %v", err))
	}
}

// ListReadiness evaluates every open PR in merge-priority order without
// merging anything.
func (s *MergeServiceImpl) ListReadiness(ctx context.Context) ([]primary.PullRequestReadiness, error) {
	prs, err := s.github.ListOpenPullRequests(ctx)
	if err != nil {
		return nil, err
	}

	ordered := merge.OrderCandidates(prs)
	out := make([]primary.PullRequestReadiness, 0, len(ordered))
	for _, pr := range ordered {
		readiness := merge.EvaluateReadiness(pr)
		out = append(out, primary.PullRequestReadiness{
			PullRequest: pr,
			Ready:       readiness.Ready,
			Reasons:     readiness.Reasons,
		})
	}
	return out, nil
}

// Ensure MergeServiceImpl implements the interface
var _ primary.MergeService = (*MergeServiceImpl)(nil)
