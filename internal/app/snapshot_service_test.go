package app

import (
	"context"
	"testing"

	"github.com/example/relay/internal/models"
	"github.com/example/relay/internal/ports/secondary"
)

func TestSnapshotEmptyStateIsGapIssue(t *testing.T) {
	svc := NewSnapshotService(newMockGateway(), newMockQueueStore(), &mockLedger{})

	snapshot, err := svc.GetStageSnapshot(context.Background())
	if err != nil {
		t.Fatalf("GetStageSnapshot failed: %v", err)
	}
	if snapshot.Stage != models.StageGapIssue {
		t.Errorf("expected GAP_ISSUE on empty state, got %s", snapshot.Stage)
	}
	if snapshot.StepIndex != 0 {
		t.Errorf("expected step 0, got %d", snapshot.StepIndex)
	}
	if snapshot.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
}

func TestSnapshotCountsAndLinking(t *testing.T) {
	gw := newMockGateway()
	gw.issues = []models.Issue{
		gapIssueFixture(1, "body"),
		{Number: 5, Title: "Add auth", State: models.IssueStateOpen, Category: models.CategoryDevelopment},
	}
	gw.prs = []models.PullRequest{
		{
			Number:             8,
			Title:              "Implement auth",
			Category:           models.CategoryDevelopment,
			State:              models.PullRequestStateOpen,
			HasReviewRequested: true,
			SourceIssueNumber:  5,
		},
	}
	store := newMockQueueStore()
	store.add("dev-002-retry.md", "# Retry")
	store.add("cap-001-docs.md", "# Docs")
	store.add("excluded-001-hold.md", "# Hold")
	svc := NewSnapshotService(gw, store, &mockLedger{})

	snapshot, err := svc.GetStageSnapshot(context.Background())
	if err != nil {
		t.Fatalf("GetStageSnapshot failed: %v", err)
	}

	if snapshot.Stage != models.StageDevMerge {
		t.Errorf("expected DEV_MERGE, got %s", snapshot.Stage)
	}
	if snapshot.Focus == nil || snapshot.Focus.PullRequestNumber != 8 || snapshot.Focus.IssueNumber != 5 {
		t.Errorf("expected focus linking PR 8 to issue 5, got %+v", snapshot.Focus)
	}

	counts := snapshot.Counts
	if counts.Pending != 3 || counts.PendingDevelopment != 1 || counts.PendingCapabilityUpdates != 1 || counts.PendingExcluded != 1 {
		t.Errorf("unexpected pending counts: %+v", counts)
	}
	if counts.OpenIssues != 2 || counts.OpenGapAnalysisIssues != 1 {
		t.Errorf("unexpected issue counts: %+v", counts)
	}
	if counts.OpenPullRequests != 1 || counts.ReadyPullRequests != 1 {
		t.Errorf("unexpected PR counts: %+v", counts)
	}
}

func TestSnapshotWarnsOnDuplicateGapIssues(t *testing.T) {
	gw := newMockGateway()
	gw.issues = []models.Issue{gapIssueFixture(1, "a"), gapIssueFixture(2, "b")}
	svc := NewSnapshotService(gw, newMockQueueStore(), &mockLedger{})

	snapshot, err := svc.GetStageSnapshot(context.Background())
	if err != nil {
		t.Fatalf("GetStageSnapshot failed: %v", err)
	}
	if len(snapshot.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", snapshot.Warnings)
	}
}

func TestSnapshotCarriesLastAction(t *testing.T) {
	ledger := &mockLedger{}
	ledger.Record(context.Background(), &secondary.ActionRecord{
		Kind:      models.EventGapIssueCreated,
		Summary:   "created gap-analysis issue #1",
		CreatedAt: "2026-08-20T10:00:00Z",
	})
	svc := NewSnapshotService(newMockGateway(), newMockQueueStore(), ledger)

	snapshot, err := svc.GetStageSnapshot(context.Background())
	if err != nil {
		t.Fatalf("GetStageSnapshot failed: %v", err)
	}
	if snapshot.LastAction == nil {
		t.Fatal("expected last action")
	}
	if snapshot.LastAction.Kind != models.EventGapIssueCreated {
		t.Errorf("unexpected kind %q", snapshot.LastAction.Kind)
	}
	if snapshot.LastAction.CreatedAt.IsZero() {
		t.Error("expected parsed timestamp")
	}
}
