// Package gap contains the pure business logic for gap-analysis issues:
// recognizing them, validating the local template, and detecting the
// known-unsafe legacy body that must be repaired before assignment.
package gap

import (
	"errors"
	"sort"
	"strings"

	"github.com/example/relay/internal/models"
)

// ErrTemplateCorrupted is fatal: the local gap-analysis template failed
// validation and EnsureGapAnalysisIssue must not proceed with it.
var ErrTemplateCorrupted = errors.New("gap analysis template is corrupted")

// IssueTitle is the fixed title of the recurring gap-analysis issue.
const IssueTitle = "Identify the next most important development gap"

// unsafePatterns are fragments of the legacy gap-analysis body that caused
// the assigned agent to recurse on its own prompt. Any occurrence marks the
// body for repair.
var unsafePatterns = []string{
	"create a new gap analysis issue",
	"create another gap analysis issue",
	"re-run this gap analysis",
	"{{gap_analysis_template}}",
}

// IsGapAnalysis reports whether an issue is the pipeline's gap-analysis
// issue, by label first and title as a fallback for issues created before
// labels were applied.
func IsGapAnalysis(issue models.Issue) bool {
	for _, label := range issue.Labels {
		if label == models.LabelGapAnalysis {
			return true
		}
	}
	return strings.EqualFold(strings.TrimSpace(issue.Title), IssueTitle)
}

// BodyIsUnsafe reports whether an existing gap-analysis body matches the
// known-unsafe legacy pattern.
func BodyIsUnsafe(body string) bool {
	lowered := strings.ToLower(body)
	for _, pattern := range unsafePatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

// ValidateTemplate checks the local, version-controlled template before it is
// used to create or repair an issue. A template that is empty or itself
// carries the unsafe pattern is corrupted.
func ValidateTemplate(template string) error {
	if strings.TrimSpace(template) == "" {
		return ErrTemplateCorrupted
	}
	if BodyIsUnsafe(template) {
		return ErrTemplateCorrupted
	}
	return nil
}

// OpenGapIssues filters the open gap-analysis issues from a fresh issue
// listing, lowest number first, so callers have a stable pick when the
// at-most-one invariant has been violated externally.
func OpenGapIssues(issues []models.Issue) []models.Issue {
	var out []models.Issue
	for _, issue := range issues {
		if issue.State != models.IssueStateOpen {
			continue
		}
		if IsGapAnalysis(issue) {
			out = append(out, issue)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
