package app

import (
	"context"
	"fmt"

	"github.com/example/relay/internal/core/queue"
	"github.com/example/relay/internal/models"
	"github.com/example/relay/internal/ports/secondary"
)

func queueCategory(name string) models.Category {
	return queue.CategoryFromName(name)
}

// assignUnavailable simulates an assignee the API refuses to accept.
var assignUnavailable = fmt.Errorf("github: assign issue: user not found")

// mockGateway implements secondary.GitHubGateway with configurable state and
// recorded mutations.
type mockGateway struct {
	issues []models.Issue
	prs    []models.PullRequest

	discussion    []models.DiscussionItem
	discussionErr error

	nextIssueNumber int
	createErr       error
	mergeErr        error
	assignErr       error
	readyErr        error
	deleteErr       error

	created     []secondary.CreateIssueRequest
	bodyUpdates map[int]string
	assigned    map[int][]string
	merged      []int
	readied     []int
	deleted     []string
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		nextIssueNumber: 100,
		bodyUpdates:     make(map[int]string),
		assigned:        make(map[int][]string),
	}
}

func (m *mockGateway) ListOpenIssues(ctx context.Context) ([]models.Issue, error) {
	out := make([]models.Issue, len(m.issues))
	copy(out, m.issues)
	return out, nil
}

func (m *mockGateway) CreateIssue(ctx context.Context, req secondary.CreateIssueRequest) (models.Issue, error) {
	if m.createErr != nil {
		return models.Issue{}, m.createErr
	}
	m.created = append(m.created, req)
	number := m.nextIssueNumber
	m.nextIssueNumber++
	issue := models.Issue{
		Number: number,
		Title:  req.Title,
		Body:   req.Body,
		State:  models.IssueStateOpen,
		Labels: req.Labels,
		URL:    fmt.Sprintf("https://github.com/acme/widgets/issues/%d", number),
	}
	for _, label := range req.Labels {
		if cat, ok := models.CategoryFromLabel(label); ok {
			issue.Category = cat
			break
		}
	}
	issue.IsGapAnalysis = issue.Category == models.CategoryGapAnalysis
	m.issues = append(m.issues, issue)
	return issue, nil
}

func (m *mockGateway) UpdateIssueBody(ctx context.Context, number int, body string) error {
	m.bodyUpdates[number] = body
	return nil
}

func (m *mockGateway) AddAssignees(ctx context.Context, number int, assignees []string) error {
	if m.assignErr != nil {
		return m.assignErr
	}
	m.assigned[number] = append(m.assigned[number], assignees...)
	return nil
}

func (m *mockGateway) ListOpenPullRequests(ctx context.Context) ([]models.PullRequest, error) {
	out := make([]models.PullRequest, len(m.prs))
	copy(out, m.prs)
	return out, nil
}

func (m *mockGateway) GetPullRequest(ctx context.Context, number int) (models.PullRequest, error) {
	for _, pr := range m.prs {
		if pr.Number == number {
			return pr, nil
		}
	}
	return models.PullRequest{}, &secondary.UpstreamError{Op: "view pull request", Err: fmt.Errorf("PR #%d not found", number)}
}

func (m *mockGateway) ListDiscussion(ctx context.Context, number int) ([]models.DiscussionItem, error) {
	if m.discussionErr != nil {
		return nil, m.discussionErr
	}
	return m.discussion, nil
}

func (m *mockGateway) MergePullRequest(ctx context.Context, number int, method string) (string, error) {
	if m.mergeErr != nil {
		return "", m.mergeErr
	}
	m.merged = append(m.merged, number)
	return fmt.Sprintf("sha-%d", number), nil
}

func (m *mockGateway) MarkReadyForReview(ctx context.Context, number int) error {
	if m.readyErr != nil {
		return m.readyErr
	}
	m.readied = append(m.readied, number)
	for i := range m.prs {
		if m.prs[i].Number == number {
			m.prs[i].IsDraft = false
		}
	}
	return nil
}

func (m *mockGateway) DeleteBranch(ctx context.Context, branch string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, branch)
	return nil
}

// mockQueueStore implements secondary.QueueStore over an in-memory map.
type mockQueueStore struct {
	files   map[string]string
	moved   []string
	moveErr error
}

func newMockQueueStore() *mockQueueStore {
	return &mockQueueStore{files: make(map[string]string)}
}

func (m *mockQueueStore) add(name, content string) {
	m.files[name] = content
}

func (m *mockQueueStore) ListPending(ctx context.Context) ([]models.QueueItem, error) {
	var items []models.QueueItem
	for name := range m.files {
		items = append(items, models.QueueItem{
			Path:     "pending/" + name,
			Name:     name,
			Category: queueCategory(name),
		})
	}
	return items, nil
}

func (m *mockQueueStore) Read(ctx context.Context, name string) ([]byte, error) {
	content, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("no such file %s", name)
	}
	return []byte(content), nil
}

func (m *mockQueueStore) MovePendingToProcessed(ctx context.Context, name string) (string, error) {
	if m.moveErr != nil {
		return "", m.moveErr
	}
	delete(m.files, name)
	m.moved = append(m.moved, name)
	return "processed/" + name, nil
}

// mockTemplateStore serves fixed template bodies.
type mockTemplateStore struct {
	gapBody string
	capBody string
	gapErr  error
	capErr  error
}

func newMockTemplateStore() *mockTemplateStore {
	return &mockTemplateStore{
		gapBody: "Compare the project goal against current capabilities.",
		capBody: "Reconcile capabilities for PR #{{PR_NUMBER}}: {{PR_TITLE}}\n\n{{PR_DESCRIPTION}}\n\n{{PR_COMMENTS}}",
	}
}

func (m *mockTemplateStore) LoadGapAnalysisTemplate() (string, error) {
	return m.gapBody, m.gapErr
}

func (m *mockTemplateStore) LoadCapabilityUpdateTemplate() (string, error) {
	return m.capBody, m.capErr
}

// mockLedger is an in-memory secondary.ActionLedger.
type mockLedger struct {
	records   []*secondary.ActionRecord
	recordErr error
}

func (m *mockLedger) Record(ctx context.Context, record *secondary.ActionRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	if record.ID == "" {
		record.ID = fmt.Sprintf("r%d", len(m.records)+1)
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockLedger) List(ctx context.Context, limit int) ([]*secondary.ActionRecord, error) {
	var out []*secondary.ActionRecord
	for i := len(m.records) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *mockLedger) Latest(ctx context.Context) (*secondary.ActionRecord, error) {
	if len(m.records) == 0 {
		return nil, nil
	}
	return m.records[len(m.records)-1], nil
}

func (m *mockLedger) FindPromotion(ctx context.Context, queueID string) (*secondary.ActionRecord, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].Kind == models.EventIssuePromoted && m.records[i].QueueID == queueID {
			return m.records[i], nil
		}
	}
	return nil, nil
}

func (m *mockLedger) lastKind() string {
	if len(m.records) == 0 {
		return ""
	}
	return m.records[len(m.records)-1].Kind
}

var _ secondary.GitHubGateway = (*mockGateway)(nil)
var _ secondary.QueueStore = (*mockQueueStore)(nil)
var _ secondary.TemplateStore = (*mockTemplateStore)(nil)
var _ secondary.ActionLedger = (*mockLedger)(nil)
