package github

import (
	"sort"
	"strings"
	"time"

	"github.com/example/relay/internal/core/capability"
	"github.com/example/relay/internal/core/gap"
	"github.com/example/relay/internal/models"
)

// gh --json output shapes. Field names follow the gh CLI, not the REST API.
type ghLabel struct {
	Name string `json:"name"`
}

type ghUser struct {
	Login string `json:"login"`
}

type ghIssue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     string    `json:"state"`
	URL       string    `json:"url"`
	Labels    []ghLabel `json:"labels"`
	Assignees []ghUser  `json:"assignees"`
	CreatedAt time.Time `json:"createdAt"`
}

type ghIssueRef struct {
	Number int `json:"number"`
}

type ghPullRequest struct {
	Number                  int          `json:"number"`
	Title                   string       `json:"title"`
	Body                    string       `json:"body"`
	State                   string       `json:"state"`
	URL                     string       `json:"url"`
	IsDraft                 bool         `json:"isDraft"`
	Mergeable               string       `json:"mergeable"`
	ReviewRequests          []ghUser     `json:"reviewRequests"`
	ReviewDecision          string       `json:"reviewDecision"`
	BaseRefName             string       `json:"baseRefName"`
	HeadRefName             string       `json:"headRefName"`
	Labels                  []ghLabel    `json:"labels"`
	CreatedAt               time.Time    `json:"createdAt"`
	ClosingIssuesReferences []ghIssueRef `json:"closingIssuesReferences"`
}

type ghComment struct {
	Author    ghUser    `json:"author"`
	Body      string    `json:"body"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

type ghReview struct {
	Author      ghUser    `json:"author"`
	Body        string    `json:"body"`
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type ghDiscussion struct {
	Comments []ghComment `json:"comments"`
	Reviews  []ghReview  `json:"reviews"`
}

// mapState lowercases gh's OPEN/CLOSED/MERGED states.
func mapState(state string) string {
	return strings.ToLower(state)
}

// categoryFromLabels picks the pipeline category from labels, falling back
// to title conventions for issues created before labeling was in place.
func categoryFromLabels(labels []ghLabel, title string) models.Category {
	for _, label := range labels {
		if c, ok := models.CategoryFromLabel(label.Name); ok {
			return c
		}
	}
	if strings.HasPrefix(title, capability.TitlePrefix) {
		return models.CategoryCapability
	}
	if strings.EqualFold(strings.TrimSpace(title), gap.IssueTitle) {
		return models.CategoryGapAnalysis
	}
	return models.CategoryDevelopment
}

func issueFromGh(r ghIssue) models.Issue {
	labels := make([]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		labels = append(labels, l.Name)
	}
	assignees := make([]string, 0, len(r.Assignees))
	for _, a := range r.Assignees {
		assignees = append(assignees, a.Login)
	}

	issue := models.Issue{
		Number:    r.Number,
		Title:     r.Title,
		Body:      r.Body,
		Category:  categoryFromLabels(r.Labels, r.Title),
		State:     mapState(r.State),
		URL:       r.URL,
		Assignees: assignees,
		Labels:    labels,
		CreatedAt: r.CreatedAt,
	}
	issue.IsGapAnalysis = gap.IsGapAnalysis(issue)
	return issue
}

func pullRequestFromGh(r ghPullRequest) models.PullRequest {
	pr := models.PullRequest{
		Number:             r.Number,
		Title:              r.Title,
		Body:               r.Body,
		Category:           categoryFromLabels(r.Labels, r.Title),
		State:              mapState(r.State),
		IsDraft:            r.IsDraft,
		HasReviewRequested: hasReviewSignal(r),
		IsConflicted:       r.Mergeable == "CONFLICTING",
		BaseBranch:         r.BaseRefName,
		HeadBranch:         r.HeadRefName,
		URL:                r.URL,
		CreatedAt:          r.CreatedAt,
	}
	if len(r.ClosingIssuesReferences) > 0 {
		pr.SourceIssueNumber = r.ClosingIssuesReferences[0].Number
	}
	return pr
}

// hasReviewSignal reports whether a review has been requested or delivered.
// A pending request and a submitted decision both count: either way a human
// is in the loop.
func hasReviewSignal(r ghPullRequest) bool {
	if len(r.ReviewRequests) > 0 {
		return true
	}
	switch r.ReviewDecision {
	case "APPROVED", "CHANGES_REQUESTED", "REVIEW_REQUIRED":
		return true
	}
	return false
}

func discussionFromGh(raw ghDiscussion) []models.DiscussionItem {
	items := make([]models.DiscussionItem, 0, len(raw.Comments)+len(raw.Reviews))
	for _, c := range raw.Comments {
		items = append(items, models.DiscussionItem{
			Kind:      "comment",
			Author:    c.Author.Login,
			Body:      c.Body,
			URL:       c.URL,
			CreatedAt: c.CreatedAt,
		})
	}
	for _, rv := range raw.Reviews {
		body := rv.Body
		if body == "" && rv.State != "" {
			body = rv.State
		}
		items = append(items, models.DiscussionItem{
			Kind:      "review",
			Author:    rv.Author.Login,
			Body:      body,
			CreatedAt: rv.SubmittedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}
