// Package models contains domain types for the relay pipeline.
// Persistence lives in internal/adapters/sqlite, GitHub access in
// internal/adapters/github.
package models

// Category is the closed set of work categories the pipeline knows about.
// Adding a category is a compile-time-checked change: the classifier and the
// merge-priority logic switch exhaustively over these values.
type Category string

const (
	CategoryDevelopment Category = "development"
	CategoryCapability  Category = "capability"
	CategoryGapAnalysis Category = "gap-analysis"
	CategoryExcluded    Category = "excluded"
)

// Label names applied to issues and PRs created by relay. These double as the
// classification signal when reading artifacts back from GitHub.
const (
	LabelDevelopment = "development"
	LabelCapability  = "capability-update"
	LabelGapAnalysis = "gap-analysis"
)

// MergeRank orders categories for merge candidate selection: capability-update
// PRs first, then gap-analysis, then development. This mirrors the stage
// classifier's priority so the dashboard and the merge action never disagree
// on what "next" means.
func (c Category) MergeRank() int {
	switch c {
	case CategoryCapability:
		return 0
	case CategoryGapAnalysis:
		return 1
	case CategoryDevelopment:
		return 2
	case CategoryExcluded:
		return 3
	}
	return 3
}

// Label returns the GitHub label for a category. Excluded items never reach
// GitHub, so they have no label.
func (c Category) Label() string {
	switch c {
	case CategoryDevelopment:
		return LabelDevelopment
	case CategoryCapability:
		return LabelCapability
	case CategoryGapAnalysis:
		return LabelGapAnalysis
	case CategoryExcluded:
		return ""
	}
	return ""
}

// CategoryFromLabel maps a GitHub label back to a category.
// Returns ("", false) for labels relay does not own.
func CategoryFromLabel(label string) (Category, bool) {
	switch label {
	case LabelDevelopment:
		return CategoryDevelopment, true
	case LabelCapability:
		return CategoryCapability, true
	case LabelGapAnalysis:
		return CategoryGapAnalysis, true
	}
	return "", false
}
