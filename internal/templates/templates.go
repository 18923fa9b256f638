// Package templates embeds the issue body templates relay creates issues
// from. Templates ship with the binary so the target repository can never
// corrupt them through unreviewed edits.
package templates

import (
	"embed"
)

//go:embed issue/*.md
var issueTemplates embed.FS

// GapAnalysis returns the gap-analysis issue body template.
func GapAnalysis() (string, error) {
	content, err := issueTemplates.ReadFile("issue/gap-analysis.md")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// CapabilityUpdate returns the capability-update issue body template with
// its {{PR_*}} placeholders.
func CapabilityUpdate() (string, error) {
	content, err := issueTemplates.ReadFile("issue/capability-update.md")
	if err != nil {
		return "", err
	}
	return string(content), nil
}
