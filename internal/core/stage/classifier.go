// Package stage derives the pipeline's current stage from a fresh snapshot
// of external state. Classification is a pure function: it is safe to call
// arbitrarily often and never caches or stores the derived stage.
//
// The ordered rule table in this file is the single source of truth for
// pipeline priority. Merge-candidate ordering (internal/core/merge) follows
// the same category ranking via models.Category.MergeRank, so the classifier
// and the merge action cannot silently diverge on what "next" means.
package stage

import (
	"sort"

	"github.com/example/relay/internal/core/gap"
	"github.com/example/relay/internal/core/merge"
	"github.com/example/relay/internal/models"
)

// Input is the snapshot the classifier derives a stage from. Issues and
// pull requests are the open sets fetched this invocation; Pending holds the
// queue files currently awaiting promotion.
type Input struct {
	Pending      []models.QueueItem
	Issues       []models.Issue
	PullRequests []models.PullRequest
}

// Result is one derived stage plus the specific artifact being worked.
type Result struct {
	Stage models.Stage
	Focus *models.Focus
}

// rule is one entry of the ordered priority table. Rules are evaluated top
// to bottom; the first match wins.
type rule struct {
	name string
	eval func(v *view) (Result, bool)
}

// rules is the explicit priority order of the pipeline:
//
//  1. No open gap-analysis issue -> GAP_ISSUE, always.
//  2. The gap-analysis issue's PR is ready -> GAP_MERGE.
//  3. The gap-analysis issue has an open PR -> GAP_EXECUTION.
//  4. Capability-update work, split merge/execution/creation.
//  5. Development work, same split.
//  6. Otherwise the gap-analysis issue is still being worked -> GAP_EXECUTION.
//
// Capability-update work always outranks development work: capability issues
// must close the loop before new development opens.
var rules = []rule{
	{name: "gap issue missing", eval: gapIssueMissing},
	{name: "gap PR ready to merge", eval: gapMergeReady},
	{name: "gap PR in progress", eval: gapExecution},
	{name: "capability work", eval: categoryRule(models.CategoryCapability,
		models.StageCapIssue, models.StageCapExecution, models.StageCapMerge)},
	{name: "development work", eval: categoryRule(models.CategoryDevelopment,
		models.StageDevIssueCreation, models.StageDevExecution, models.StageDevMerge)},
	{name: "gap analysis running", eval: gapFallback},
}

// Classify derives exactly one stage from the input. It never mutates
// external state.
func Classify(input Input) Result {
	v := newView(input)
	for _, r := range rules {
		if res, ok := r.eval(v); ok {
			return res
		}
	}
	// Unreachable: the first and last rules cover both gap-issue states.
	return Result{Stage: models.StageGapIssue}
}

// view precomputes the per-category slices the rules match against.
type view struct {
	gapIssues []models.Issue
	gapPR     *models.PullRequest

	pendingByCategory map[models.Category][]models.QueueItem
	issuesByCategory  map[models.Category][]models.Issue
	prsByCategory     map[models.Category][]models.PullRequest
}

func newView(input Input) *view {
	v := &view{
		gapIssues:         gap.OpenGapIssues(input.Issues),
		pendingByCategory: make(map[models.Category][]models.QueueItem),
		issuesByCategory:  make(map[models.Category][]models.Issue),
		prsByCategory:     make(map[models.Category][]models.PullRequest),
	}

	pending := make([]models.QueueItem, len(input.Pending))
	copy(pending, input.Pending)
	sort.Slice(pending, func(i, j int) bool { return pending[i].Name < pending[j].Name })
	for _, item := range pending {
		v.pendingByCategory[item.Category] = append(v.pendingByCategory[item.Category], item)
	}

	for _, issue := range input.Issues {
		if issue.State != models.IssueStateOpen || gap.IsGapAnalysis(issue) {
			continue
		}
		v.issuesByCategory[issue.Category] = append(v.issuesByCategory[issue.Category], issue)
	}
	for cat := range v.issuesByCategory {
		issues := v.issuesByCategory[cat]
		sort.Slice(issues, func(i, j int) bool { return issues[i].Number < issues[j].Number })
	}

	gapNumbers := make(map[int]bool)
	for _, issue := range v.gapIssues {
		gapNumbers[issue.Number] = true
	}

	prs := make([]models.PullRequest, len(input.PullRequests))
	copy(prs, input.PullRequests)
	sort.Slice(prs, func(i, j int) bool { return prs[i].Number < prs[j].Number })
	for _, pr := range prs {
		if pr.State != models.PullRequestStateOpen {
			continue
		}
		if pr.Category == models.CategoryGapAnalysis || gapNumbers[pr.SourceIssueNumber] {
			if v.gapPR == nil {
				p := pr
				v.gapPR = &p
			}
			continue
		}
		v.prsByCategory[pr.Category] = append(v.prsByCategory[pr.Category], pr)
	}

	return v
}

func gapIssueMissing(v *view) (Result, bool) {
	if len(v.gapIssues) > 0 {
		return Result{}, false
	}
	return Result{Stage: models.StageGapIssue}, true
}

func gapMergeReady(v *view) (Result, bool) {
	if v.gapPR == nil || !merge.EvaluateReadiness(*v.gapPR).Ready {
		return Result{}, false
	}
	return Result{
		Stage: models.StageGapMerge,
		Focus: focusForPR(*v.gapPR, v.gapIssues),
	}, true
}

func gapExecution(v *view) (Result, bool) {
	if v.gapPR == nil {
		return Result{}, false
	}
	return Result{
		Stage: models.StageGapExecution,
		Focus: focusForPR(*v.gapPR, v.gapIssues),
	}, true
}

// gapFallback applies when a gap-analysis issue is open but no other work
// exists anywhere: the gap analysis itself is still being executed.
func gapFallback(v *view) (Result, bool) {
	issue := v.gapIssues[0]
	return Result{
		Stage: models.StageGapExecution,
		Focus: &models.Focus{Title: issue.Title, IssueNumber: issue.Number, IssueURL: issue.URL},
	}, true
}

// categoryRule builds the three-way merge/execution/creation split for one
// category. Within a category: a ready PR means merge; any open PR or open
// issue means execution; an unpromoted queue file means issue creation.
func categoryRule(cat models.Category, issueStage, execStage, mergeStage models.Stage) func(*view) (Result, bool) {
	return func(v *view) (Result, bool) {
		for _, pr := range v.prsByCategory[cat] {
			if merge.EvaluateReadiness(pr).Ready {
				return Result{Stage: mergeStage, Focus: focusForPR(pr, v.issuesByCategory[cat])}, true
			}
		}
		if prs := v.prsByCategory[cat]; len(prs) > 0 {
			return Result{Stage: execStage, Focus: focusForPR(prs[0], v.issuesByCategory[cat])}, true
		}
		if issues := v.issuesByCategory[cat]; len(issues) > 0 {
			issue := issues[0]
			return Result{
				Stage: execStage,
				Focus: &models.Focus{Title: issue.Title, IssueNumber: issue.Number, IssueURL: issue.URL},
			}, true
		}
		if items := v.pendingByCategory[cat]; len(items) > 0 {
			item := items[0]
			return Result{
				Stage: issueStage,
				Focus: &models.Focus{Title: item.Name, QueuePath: item.Path},
			}, true
		}
		return Result{}, false
	}
}

// focusForPR builds a focus record for a PR, joining in its source issue
// when one is present in the fresh listing.
func focusForPR(pr models.PullRequest, issues []models.Issue) *models.Focus {
	focus := &models.Focus{
		Title:             pr.Title,
		PullRequestNumber: pr.Number,
		PullRequestURL:    pr.URL,
	}
	for _, issue := range issues {
		if issue.Number == pr.SourceIssueNumber {
			focus.IssueNumber = issue.Number
			focus.IssueURL = issue.URL
			if focus.Title == "" {
				focus.Title = issue.Title
			}
			break
		}
	}
	return focus
}
