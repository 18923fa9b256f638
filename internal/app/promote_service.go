package app

import (
	"context"
	"fmt"

	"github.com/example/relay/internal/core/queue"
	"github.com/example/relay/internal/models"
	"github.com/example/relay/internal/ports/primary"
	"github.com/example/relay/internal/ports/secondary"
)

// PromoteServiceImpl implements primary.PromoteService.
type PromoteServiceImpl struct {
	github   secondary.GitHubGateway
	queue    secondary.QueueStore
	ledger   secondary.ActionLedger
	assignee string
}

// NewPromoteService creates a new queue promotion service.
func NewPromoteService(github secondary.GitHubGateway, queueStore secondary.QueueStore, ledger secondary.ActionLedger, assignee string) *PromoteServiceImpl {
	return &PromoteServiceImpl{github: github, queue: queueStore, ledger: ledger, assignee: assignee}
}

// PromoteNextQueueItem promotes the oldest pending file into an issue. The
// file moves to processed/ only after the issue exists, so a crash between
// the two steps leaves the item pending and the retry path below completes
// the move without creating a duplicate issue.
func (s *PromoteServiceImpl) PromoteNextQueueItem(ctx context.Context) (*primary.PromoteResult, error) {
	pending, err := s.queue.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending queue: %w", err)
	}

	next, err := queue.Next(pending)
	if err != nil {
		return nil, err
	}

	if result, done, err := s.resumeInterrupted(ctx, next); err != nil {
		return nil, err
	} else if done {
		return result, nil
	}

	content, err := s.queue.Read(ctx, next.Name)
	if err != nil {
		return nil, err
	}
	item, err := queue.Parse(next.Name, content)
	if err != nil {
		return nil, err
	}

	issue, err := s.github.CreateIssue(ctx, secondary.CreateIssueRequest{
		Title:  item.Title,
		Body:   item.Body,
		Labels: []string{item.Category.Label()},
	})
	if err != nil {
		return nil, err
	}

	result := &primary.PromoteResult{
		IssueNumber: issue.Number,
		IssueURL:    issue.URL,
		IssueTitle:  issue.Title,
		QueuePath:   next.Path,
		Created:     true,
	}
	result.Warnings = append(result.Warnings, assignBestEffort(ctx, s.github, issue.Number, s.assignee)...)

	if err := s.ledger.Record(ctx, &secondary.ActionRecord{
		Kind:        models.EventIssuePromoted,
		Summary:     fmt.Sprintf("promoted %s to issue #%d", next.Name, issue.Number),
		QueueID:     next.Name,
		IssueNumber: issue.Number,
	}); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to record action: %v", err))
	}

	processed, err := s.queue.MovePendingToProcessed(ctx, next.Name)
	if err != nil {
		return nil, fmt.Errorf("issue #%d created but queue file not moved: %w", issue.Number, err)
	}
	result.ProcessedPath = processed

	return result, nil
}

// resumeInterrupted detects a promotion that created its issue but crashed
// before the file move, via the ledger first and the hidden body marker as
// the fallback, and completes only the outstanding move.
func (s *PromoteServiceImpl) resumeInterrupted(ctx context.Context, next models.QueueItem) (*primary.PromoteResult, bool, error) {
	promoted, err := s.ledger.FindPromotion(ctx, next.Name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check promotion history: %w", err)
	}

	result := &primary.PromoteResult{QueuePath: next.Path}
	if promoted != nil {
		result.IssueNumber = promoted.IssueNumber
	} else {
		issues, err := s.github.ListOpenIssues(ctx)
		if err != nil {
			return nil, false, err
		}
		found := false
		for _, issue := range issues {
			if queue.HasMarker(issue.Body, next.Name) {
				result.IssueNumber = issue.Number
				result.IssueURL = issue.URL
				result.IssueTitle = issue.Title
				found = true
				break
			}
		}
		if !found {
			return nil, false, nil
		}
	}

	processed, err := s.queue.MovePendingToProcessed(ctx, next.Name)
	if err != nil {
		return nil, false, fmt.Errorf("issue #%d exists but queue file not moved: %w", result.IssueNumber, err)
	}
	result.ProcessedPath = processed
	result.Warnings = append(result.Warnings, fmt.Sprintf("%s was already promoted to issue #%d; completed the file move", next.Name, result.IssueNumber))

	return result, true, nil
}

// Ensure PromoteServiceImpl implements the interface
var _ primary.PromoteService = (*PromoteServiceImpl)(nil)
