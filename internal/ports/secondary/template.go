package secondary

// TemplateStore loads the version-controlled issue body templates. Templates
// are local to the automation, never fetched from the target repository, so
// unreviewed edits there cannot corrupt them.
type TemplateStore interface {
	// LoadGapAnalysisTemplate returns the gap-analysis issue body.
	// Returns gap.ErrTemplateCorrupted (wrapped) if validation fails.
	LoadGapAnalysisTemplate() (string, error)

	// LoadCapabilityUpdateTemplate returns the capability-update issue
	// body template with its {{PR_*}} placeholders.
	LoadCapabilityUpdateTemplate() (string, error)
}
