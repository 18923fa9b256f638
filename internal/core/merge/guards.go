// Package merge contains the pure business logic for the merge gate: the
// readiness predicate and merge-candidate selection. Guards evaluate
// preconditions without side effects; the draft flip, the merge call, and
// branch deletion happen in the app layer.
package merge

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/example/relay/internal/models"
)

// ErrNoReadyPullRequest is returned when no open PR passes the readiness
// predicate. Like an empty queue, this is a normal terminal outcome.
var ErrNoReadyPullRequest = errors.New("no pull request is ready to merge")

// Refusal reasons surfaced by the readiness predicate. These are stable
// strings the CLI renders directly.
const (
	ReasonNotOpen            = "pull request is not open"
	ReasonIsDraft            = "pull request is a draft"
	ReasonWorkInProgress     = "title or body carries a work-in-progress marker"
	ReasonReviewNotRequested = "no review has been requested"
	ReasonMergeConflict      = "merge conflicts with the base branch"
)

// Readiness is the outcome of the composite readiness predicate.
type Readiness struct {
	Ready   bool
	Reasons []string
}

// RefusedError reports why a specific PR was refused. Refusals are surfaced
// as structured reasons, never silently skipped.
type RefusedError struct {
	Number  int
	Reasons []string
}

func (e *RefusedError) Error() string {
	return fmt.Sprintf("refusing to merge PR #%d: %s", e.Number, strings.Join(e.Reasons, "; "))
}

// wipMarkers are the title/body fragments that mark a PR as not yet
// reviewable regardless of its draft flag.
var wipMarkers = []string{"wip:", "[wip]", "work in progress", "do not merge"}

// IsWorkInProgress reports whether a PR's title or body carries a
// work-in-progress marker.
func IsWorkInProgress(title, body string) bool {
	haystack := strings.ToLower(title) + "\n" + strings.ToLower(body)
	for _, marker := range wipMarkers {
		if strings.Contains(haystack, marker) {
			return true
		}
	}
	return false
}

// EvaluateReadiness applies the composite readiness predicate. All conditions
// must hold; every violated condition is reported, not just the first.
//
// A missing review request means the automation has no attestation that the
// change is reviewable, so it refuses rather than merging silently.
func EvaluateReadiness(pr models.PullRequest) Readiness {
	var reasons []string

	if pr.State != models.PullRequestStateOpen {
		reasons = append(reasons, ReasonNotOpen)
	}
	if pr.IsDraft {
		reasons = append(reasons, ReasonIsDraft)
	}
	if IsWorkInProgress(pr.Title, pr.Body) {
		reasons = append(reasons, ReasonWorkInProgress)
	}
	if !pr.HasReviewRequested {
		reasons = append(reasons, ReasonReviewNotRequested)
	}
	if pr.IsConflicted {
		reasons = append(reasons, ReasonMergeConflict)
	}

	return Readiness{Ready: len(reasons) == 0, Reasons: reasons}
}

// BlockedOnlyByDraft reports whether flipping the PR out of draft would make
// it ready. The flip itself is a best-effort side effect owned by the caller;
// flip failure degrades to "not ready" rather than fatal.
func BlockedOnlyByDraft(pr models.PullRequest) bool {
	r := EvaluateReadiness(pr)
	return !r.Ready && len(r.Reasons) == 1 && r.Reasons[0] == ReasonIsDraft
}

// OrderCandidates sorts PRs into merge-priority order: capability-update
// first, then gap-analysis, then development, with the lowest PR number
// breaking ties within a category.
func OrderCandidates(prs []models.PullRequest) []models.PullRequest {
	ordered := make([]models.PullRequest, len(prs))
	copy(ordered, prs)
	sort.Slice(ordered, func(i, j int) bool {
		ri, rj := ordered[i].Category.MergeRank(), ordered[j].Category.MergeRank()
		if ri != rj {
			return ri < rj
		}
		return ordered[i].Number < ordered[j].Number
	})
	return ordered
}

// SelectCandidate picks the single PR to merge this invocation: the highest
// priority PR that is ready, or ready once flipped out of draft. Returns
// ErrNoReadyPullRequest when nothing qualifies.
func SelectCandidate(prs []models.PullRequest) (models.PullRequest, error) {
	for _, pr := range OrderCandidates(prs) {
		if EvaluateReadiness(pr).Ready || BlockedOnlyByDraft(pr) {
			return pr, nil
		}
	}
	return models.PullRequest{}, ErrNoReadyPullRequest
}
