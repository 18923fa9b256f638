package app

import (
	"context"
	"fmt"

	"github.com/example/relay/internal/core/gap"
	"github.com/example/relay/internal/models"
	"github.com/example/relay/internal/ports/primary"
	"github.com/example/relay/internal/ports/secondary"
)

// GapServiceImpl implements primary.GapService.
type GapServiceImpl struct {
	github    secondary.GitHubGateway
	templates secondary.TemplateStore
	ledger    secondary.ActionLedger
	assignee  string
}

// NewGapService creates a new gap-analysis service.
func NewGapService(github secondary.GitHubGateway, templates secondary.TemplateStore, ledger secondary.ActionLedger, assignee string) *GapServiceImpl {
	return &GapServiceImpl{github: github, templates: templates, ledger: ledger, assignee: assignee}
}

// EnsureGapAnalysisIssue guarantees one open, correctly-shaped gap-analysis
// issue. Idempotent: an existing healthy issue short-circuits to a no-op.
func (s *GapServiceImpl) EnsureGapAnalysisIssue(ctx context.Context) (*primary.EnsureGapResult, error) {
	issues, err := s.github.ListOpenIssues(ctx)
	if err != nil {
		return nil, err
	}

	open := gap.OpenGapIssues(issues)
	if len(open) > 0 {
		return s.ensureExisting(ctx, open)
	}
	return s.create(ctx)
}

// ensureExisting inspects the oldest open gap issue and repairs a
// known-unsafe legacy body in place. Only the oldest issue is touched;
// duplicates surface as a warning, never as a second creation.
func (s *GapServiceImpl) ensureExisting(ctx context.Context, open []models.Issue) (*primary.EnsureGapResult, error) {
	issue := open[0]
	result := &primary.EnsureGapResult{
		IssueNumber: issue.Number,
		IssueURL:    issue.URL,
	}
	if len(open) > 1 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d open gap-analysis issues; using #%d", len(open), issue.Number))
	}

	if !gap.BodyIsUnsafe(issue.Body) {
		return result, nil
	}

	template, err := s.templates.LoadGapAnalysisTemplate()
	if err != nil {
		return nil, err
	}
	if err := s.github.UpdateIssueBody(ctx, issue.Number, template); err != nil {
		return nil, err
	}
	result.Repaired = true
	result.Warnings = append(result.Warnings, assignBestEffort(ctx, s.github, issue.Number, s.assignee)...)

	s.record(ctx, result, &secondary.ActionRecord{
		Kind:        models.EventGapIssueRepaired,
		Summary:     fmt.Sprintf("repaired unsafe gap-analysis body on issue #%d", issue.Number),
		IssueNumber: issue.Number,
	})
	return result, nil
}

func (s *GapServiceImpl) create(ctx context.Context) (*primary.EnsureGapResult, error) {
	template, err := s.templates.LoadGapAnalysisTemplate()
	if err != nil {
		return nil, err
	}

	issue, err := s.github.CreateIssue(ctx, secondary.CreateIssueRequest{
		Title:  gap.IssueTitle,
		Body:   template,
		Labels: []string{models.LabelGapAnalysis},
	})
	if err != nil {
		return nil, err
	}

	result := &primary.EnsureGapResult{
		Created:     true,
		IssueNumber: issue.Number,
		IssueURL:    issue.URL,
	}
	result.Warnings = append(result.Warnings, assignBestEffort(ctx, s.github, issue.Number, s.assignee)...)

	s.record(ctx, result, &secondary.ActionRecord{
		Kind:        models.EventGapIssueCreated,
		Summary:     fmt.Sprintf("created gap-analysis issue #%d", issue.Number),
		IssueNumber: issue.Number,
	})
	return result, nil
}

func (s *GapServiceImpl) record(ctx context.Context, result *primary.EnsureGapResult, record *secondary.ActionRecord) {
	if err := s.ledger.Record(ctx, record); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to record action: %v", err))
	}
}

// assignBestEffort assigns an issue to the configured actor. An unavailable
// assignee degrades to a warning; the issue itself stands.
func assignBestEffort(ctx context.Context, github secondary.GitHubGateway, number int, assignee string) []string {
	if assignee == "" {
		return nil
	}
	if err := github.AddAssignees(ctx, number, []string{assignee}); err != nil {
		return []string{fmt.Sprintf("assignee %s unavailable on issue #%d: %v", assignee, number, err)}
	}
	return nil
}

// Ensure GapServiceImpl implements the interface
var _ primary.GapService = (*GapServiceImpl)(nil)
