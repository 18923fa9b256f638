// Package app implements the primary ports: the application services that
// orchestrate core logic with the queue, GitHub, template, and ledger
// adapters. Services hold no state between calls; every invocation works on
// a fresh snapshot of external state.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/relay/internal/core/merge"
	"github.com/example/relay/internal/core/stage"
	"github.com/example/relay/internal/models"
	"github.com/example/relay/internal/ports/primary"
	"github.com/example/relay/internal/ports/secondary"
)

// SnapshotServiceImpl implements primary.SnapshotService.
type SnapshotServiceImpl struct {
	github secondary.GitHubGateway
	queue  secondary.QueueStore
	ledger secondary.ActionLedger
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(github secondary.GitHubGateway, queue secondary.QueueStore, ledger secondary.ActionLedger) *SnapshotServiceImpl {
	return &SnapshotServiceImpl{github: github, queue: queue, ledger: ledger}
}

// GetStageSnapshot fetches fresh external state and classifies it into
// exactly one stage. It performs no writes.
func (s *SnapshotServiceImpl) GetStageSnapshot(ctx context.Context) (*models.StageSnapshot, error) {
	pending, err := s.queue.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending queue: %w", err)
	}
	issues, err := s.github.ListOpenIssues(ctx)
	if err != nil {
		return nil, err
	}
	prs, err := s.github.ListOpenPullRequests(ctx)
	if err != nil {
		return nil, err
	}

	result := stage.Classify(stage.Input{
		Pending:      pending,
		Issues:       issues,
		PullRequests: prs,
	})

	snapshot := &models.StageSnapshot{
		Stage:       result.Stage,
		StageLabel:  result.Stage.Label(),
		StepIndex:   result.Stage.StepIndex(),
		Focus:       result.Focus,
		Counts:      countSnapshot(pending, issues, prs),
		Warnings:    snapshotWarnings(issues),
		GeneratedAt: time.Now().UTC(),
	}

	last, err := s.ledger.Latest(ctx)
	if err != nil {
		snapshot.Warnings = append(snapshot.Warnings, fmt.Sprintf("action history unavailable: %v", err))
	} else if last != nil {
		snapshot.LastAction = eventFromRecord(last)
	}

	return snapshot, nil
}

func countSnapshot(pending []models.QueueItem, issues []models.Issue, prs []models.PullRequest) models.SnapshotCounts {
	counts := models.SnapshotCounts{
		Pending:          len(pending),
		OpenIssues:       len(issues),
		OpenPullRequests: len(prs),
	}
	for _, item := range pending {
		switch item.Category {
		case models.CategoryDevelopment:
			counts.PendingDevelopment++
		case models.CategoryCapability:
			counts.PendingCapabilityUpdates++
		case models.CategoryExcluded:
			counts.PendingExcluded++
		}
	}
	for _, issue := range issues {
		if issue.IsGapAnalysis {
			counts.OpenGapAnalysisIssues++
		}
	}
	for _, pr := range prs {
		if merge.EvaluateReadiness(pr).Ready {
			counts.ReadyPullRequests++
		}
	}
	return counts
}

func snapshotWarnings(issues []models.Issue) []string {
	var warnings []string
	gapCount := 0
	for _, issue := range issues {
		if issue.IsGapAnalysis {
			gapCount++
		}
	}
	if gapCount > 1 {
		warnings = append(warnings, fmt.Sprintf("%d open gap-analysis issues; the oldest is authoritative", gapCount))
	}
	return warnings
}

// eventFromRecord converts a persisted ledger row to the domain event.
func eventFromRecord(record *secondary.ActionRecord) *models.ActionEvent {
	event := &models.ActionEvent{
		ID:                record.ID,
		Kind:              record.Kind,
		Summary:           record.Summary,
		QueueID:           record.QueueID,
		IssueNumber:       record.IssueNumber,
		PullRequestNumber: record.PullRequestNumber,
	}
	if t, err := time.Parse(time.RFC3339, record.CreatedAt); err == nil {
		event.CreatedAt = t
	}
	return event
}

// Ensure SnapshotServiceImpl implements the interface
var _ primary.SnapshotService = (*SnapshotServiceImpl)(nil)
