package app

import (
	"context"
	"strings"
	"testing"

	"github.com/example/relay/internal/core/gap"
	"github.com/example/relay/internal/models"
)

func gapIssueFixture(number int, body string) models.Issue {
	return models.Issue{
		Number:        number,
		Title:         gap.IssueTitle,
		Body:          body,
		State:         models.IssueStateOpen,
		Category:      models.CategoryGapAnalysis,
		IsGapAnalysis: true,
		URL:           "https://github.com/acme/widgets/issues/1",
	}
}

func TestEnsureGapCreatesWhenMissing(t *testing.T) {
	gw := newMockGateway()
	ledger := &mockLedger{}
	svc := NewGapService(gw, newMockTemplateStore(), ledger, "relay-bot")

	result, err := svc.EnsureGapAnalysisIssue(context.Background())
	if err != nil {
		t.Fatalf("EnsureGapAnalysisIssue failed: %v", err)
	}
	if !result.Created {
		t.Error("expected Created")
	}
	if len(gw.created) != 1 {
		t.Fatalf("expected 1 issue created, got %d", len(gw.created))
	}
	req := gw.created[0]
	if req.Title != gap.IssueTitle {
		t.Errorf("unexpected title %q", req.Title)
	}
	if len(req.Labels) != 1 || req.Labels[0] != models.LabelGapAnalysis {
		t.Errorf("unexpected labels %v", req.Labels)
	}
	if got := gw.assigned[result.IssueNumber]; len(got) != 1 || got[0] != "relay-bot" {
		t.Errorf("expected assignment, got %v", got)
	}
	if ledger.lastKind() != models.EventGapIssueCreated {
		t.Errorf("expected gap_issue_created event, got %q", ledger.lastKind())
	}
}

func TestEnsureGapIsIdempotent(t *testing.T) {
	gw := newMockGateway()
	gw.issues = []models.Issue{gapIssueFixture(7, "healthy body")}
	ledger := &mockLedger{}
	svc := NewGapService(gw, newMockTemplateStore(), ledger, "relay-bot")

	result, err := svc.EnsureGapAnalysisIssue(context.Background())
	if err != nil {
		t.Fatalf("EnsureGapAnalysisIssue failed: %v", err)
	}
	if result.Created || result.Repaired {
		t.Errorf("expected no-op, got %+v", result)
	}
	if result.IssueNumber != 7 {
		t.Errorf("expected issue 7, got %d", result.IssueNumber)
	}
	if len(gw.created) != 0 {
		t.Errorf("expected no issue creation, got %d", len(gw.created))
	}
	if len(ledger.records) != 0 {
		t.Errorf("no-op must not record events, got %d", len(ledger.records))
	}
}

func TestEnsureGapRepairsUnsafeBody(t *testing.T) {
	gw := newMockGateway()
	gw.issues = []models.Issue{gapIssueFixture(7, "When done, create a new gap analysis issue.")}
	ledger := &mockLedger{}
	templates := newMockTemplateStore()
	svc := NewGapService(gw, templates, ledger, "relay-bot")

	result, err := svc.EnsureGapAnalysisIssue(context.Background())
	if err != nil {
		t.Fatalf("EnsureGapAnalysisIssue failed: %v", err)
	}
	if !result.Repaired || result.Created {
		t.Errorf("expected repair, got %+v", result)
	}
	if gw.bodyUpdates[7] != templates.gapBody {
		t.Errorf("expected body replaced with template, got %q", gw.bodyUpdates[7])
	}
	if got := gw.assigned[7]; len(got) != 1 || got[0] != "relay-bot" {
		t.Errorf("expected repaired issue assigned to relay-bot, got %v", got)
	}
	if ledger.lastKind() != models.EventGapIssueRepaired {
		t.Errorf("expected gap_issue_repaired event, got %q", ledger.lastKind())
	}
}

func TestEnsureGapDuplicatesWarnUseOldest(t *testing.T) {
	gw := newMockGateway()
	older := gapIssueFixture(3, "body")
	newer := gapIssueFixture(9, "body")
	gw.issues = []models.Issue{newer, older}
	svc := NewGapService(gw, newMockTemplateStore(), &mockLedger{}, "")

	result, err := svc.EnsureGapAnalysisIssue(context.Background())
	if err != nil {
		t.Fatalf("EnsureGapAnalysisIssue failed: %v", err)
	}
	if result.IssueNumber != 3 {
		t.Errorf("expected oldest issue 3, got %d", result.IssueNumber)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "2 open gap-analysis issues") {
		t.Errorf("expected duplicate warning, got %v", result.Warnings)
	}
}

func TestEnsureGapCorruptedTemplateFails(t *testing.T) {
	templates := newMockTemplateStore()
	templates.gapErr = gap.ErrTemplateCorrupted
	svc := NewGapService(newMockGateway(), templates, &mockLedger{}, "")

	if _, err := svc.EnsureGapAnalysisIssue(context.Background()); err == nil {
		t.Fatal("expected template error")
	}
}

func TestEnsureGapAssigneeFailureIsWarning(t *testing.T) {
	gw := newMockGateway()
	gw.assignErr = assignUnavailable
	svc := NewGapService(gw, newMockTemplateStore(), &mockLedger{}, "relay-bot")

	result, err := svc.EnsureGapAnalysisIssue(context.Background())
	if err != nil {
		t.Fatalf("assignee failure must not fail creation: %v", err)
	}
	if !result.Created {
		t.Error("expected Created despite assignee failure")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "relay-bot") {
		t.Errorf("expected assignee warning, got %v", result.Warnings)
	}
}
