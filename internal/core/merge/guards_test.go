package merge

import (
	"errors"
	"testing"

	"github.com/example/relay/internal/models"
)

func readyPR(number int, category models.Category) models.PullRequest {
	return models.PullRequest{
		Number:             number,
		Category:           category,
		State:              models.PullRequestStateOpen,
		IsDraft:            false,
		HasReviewRequested: true,
		IsConflicted:       false,
	}
}

func TestEvaluateReadiness(t *testing.T) {
	tests := []struct {
		name        string
		pr          models.PullRequest
		wantReady   bool
		wantReasons []string
	}{
		{
			name:      "ready PR passes",
			pr:        readyPR(5, models.CategoryDevelopment),
			wantReady: true,
		},
		{
			name: "draft is refused",
			pr: func() models.PullRequest {
				pr := readyPR(5, models.CategoryDevelopment)
				pr.IsDraft = true
				return pr
			}(),
			wantReady:   false,
			wantReasons: []string{ReasonIsDraft},
		},
		{
			name: "missing review request is refused",
			pr: func() models.PullRequest {
				pr := readyPR(5, models.CategoryDevelopment)
				pr.HasReviewRequested = false
				return pr
			}(),
			wantReady:   false,
			wantReasons: []string{ReasonReviewNotRequested},
		},
		{
			name: "conflicted PR is refused",
			pr: func() models.PullRequest {
				pr := readyPR(5, models.CategoryDevelopment)
				pr.IsConflicted = true
				return pr
			}(),
			wantReady:   false,
			wantReasons: []string{ReasonMergeConflict},
		},
		{
			name: "WIP title is refused",
			pr: func() models.PullRequest {
				pr := readyPR(5, models.CategoryDevelopment)
				pr.Title = "WIP: half-finished refactor"
				return pr
			}(),
			wantReady:   false,
			wantReasons: []string{ReasonWorkInProgress},
		},
		{
			name: "merged PR is not open",
			pr: func() models.PullRequest {
				pr := readyPR(5, models.CategoryDevelopment)
				pr.State = models.PullRequestStateMerged
				return pr
			}(),
			wantReady:   false,
			wantReasons: []string{ReasonNotOpen},
		},
		{
			name: "all violations are reported",
			pr: models.PullRequest{
				Number:       7,
				Category:     models.CategoryDevelopment,
				State:        models.PullRequestStateOpen,
				IsDraft:      true,
				IsConflicted: true,
			},
			wantReady:   false,
			wantReasons: []string{ReasonIsDraft, ReasonReviewNotRequested, ReasonMergeConflict},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateReadiness(tt.pr)
			if got.Ready != tt.wantReady {
				t.Errorf("Ready = %v, want %v (reasons: %v)", got.Ready, tt.wantReady, got.Reasons)
			}
			if len(got.Reasons) != len(tt.wantReasons) {
				t.Fatalf("Reasons = %v, want %v", got.Reasons, tt.wantReasons)
			}
			for i, r := range tt.wantReasons {
				if got.Reasons[i] != r {
					t.Errorf("Reasons[%d] = %q, want %q", i, got.Reasons[i], r)
				}
			}
		})
	}
}

// A PR lacking a review request is never ready, whatever else holds.
func TestReadinessRequiresReviewRequest(t *testing.T) {
	for _, category := range []models.Category{
		models.CategoryDevelopment, models.CategoryCapability, models.CategoryGapAnalysis,
	} {
		pr := readyPR(1, category)
		pr.HasReviewRequested = false
		if EvaluateReadiness(pr).Ready {
			t.Errorf("category %v: PR without review request must not be ready", category)
		}
	}
}

func TestIsWorkInProgress(t *testing.T) {
	tests := []struct {
		title string
		body  string
		want  bool
	}{
		{"Add retries", "normal body", false},
		{"WIP: add retries", "", true},
		{"[WIP] add retries", "", true},
		{"Add retries", "still work in progress, do not review", true},
		{"Add retries", "DO NOT MERGE until #12 lands", true},
	}

	for _, tt := range tests {
		if got := IsWorkInProgress(tt.title, tt.body); got != tt.want {
			t.Errorf("IsWorkInProgress(%q, %q) = %v, want %v", tt.title, tt.body, got, tt.want)
		}
	}
}

func TestBlockedOnlyByDraft(t *testing.T) {
	pr := readyPR(3, models.CategoryGapAnalysis)
	pr.IsDraft = true
	if !BlockedOnlyByDraft(pr) {
		t.Error("draft-only blocker should be flippable")
	}

	pr.IsConflicted = true
	if BlockedOnlyByDraft(pr) {
		t.Error("conflicted draft must not be flippable to ready")
	}

	if BlockedOnlyByDraft(readyPR(4, models.CategoryDevelopment)) {
		t.Error("a ready PR is not blocked by draft")
	}
}

func TestSelectCandidate(t *testing.T) {
	t.Run("capability outranks gap-analysis outranks development", func(t *testing.T) {
		prs := []models.PullRequest{
			readyPR(10, models.CategoryDevelopment),
			readyPR(11, models.CategoryGapAnalysis),
			readyPR(12, models.CategoryCapability),
		}
		got, err := SelectCandidate(prs)
		if err != nil {
			t.Fatalf("SelectCandidate() unexpected error: %v", err)
		}
		if got.Number != 12 {
			t.Errorf("selected #%d, want capability PR #12", got.Number)
		}
	})

	t.Run("lowest number breaks ties within a category", func(t *testing.T) {
		prs := []models.PullRequest{
			readyPR(9, models.CategoryDevelopment),
			readyPR(4, models.CategoryDevelopment),
		}
		got, err := SelectCandidate(prs)
		if err != nil {
			t.Fatalf("SelectCandidate() unexpected error: %v", err)
		}
		if got.Number != 4 {
			t.Errorf("selected #%d, want #4", got.Number)
		}
	})

	t.Run("nothing ready", func(t *testing.T) {
		pr := readyPR(2, models.CategoryDevelopment)
		pr.IsConflicted = true
		if _, err := SelectCandidate([]models.PullRequest{pr}); !errors.Is(err, ErrNoReadyPullRequest) {
			t.Errorf("SelectCandidate() error = %v, want ErrNoReadyPullRequest", err)
		}
	})

	t.Run("draft-only blocker is still a candidate", func(t *testing.T) {
		pr := readyPR(6, models.CategoryDevelopment)
		pr.IsDraft = true
		got, err := SelectCandidate([]models.PullRequest{pr})
		if err != nil {
			t.Fatalf("SelectCandidate() unexpected error: %v", err)
		}
		if got.Number != 6 {
			t.Errorf("selected #%d, want #6", got.Number)
		}
	})
}
