// Package capability renders the follow-up issue created after a development
// PR merges. The issue body captures the merged PR's description and
// discussion so the agent can reconcile the declared-capabilities document
// without speculating.
package capability

import (
	"fmt"
	"strings"

	"github.com/example/relay/internal/models"
)

// TitlePrefix identifies capability-update issues by title when the label is
// missing.
const TitlePrefix = "Update system capabilities based on merged PR"

// TitleForPR returns the canonical capability-update issue title.
func TitleForPR(number int) string {
	return fmt.Sprintf("%s #%d", TitlePrefix, number)
}

// IsCapabilityUpdate reports whether an issue is a capability-update
// follow-up, by label first and title prefix as a fallback.
func IsCapabilityUpdate(issue models.Issue) bool {
	for _, label := range issue.Labels {
		if label == models.LabelCapability {
			return true
		}
	}
	return strings.HasPrefix(strings.TrimSpace(issue.Title), TitlePrefix)
}

// RenderDiscussion renders PR discussion items as compact markdown in
// chronological order. Bodies are indented so markdown list formatting stays
// stable.
func RenderDiscussion(items []models.DiscussionItem) string {
	if len(items) == 0 {
		return "(no PR comments)"
	}

	var parts []string
	for _, item := range items {
		header := fmt.Sprintf("- **%s** *( %s by %s )*",
			item.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"), item.Kind, item.Author)

		body := strings.TrimSpace(item.Body)
		if body == "" {
			body = "(empty)"
		}
		var indented []string
		for _, line := range strings.Split(body, "\n") {
			indented = append(indented, "  "+line)
		}
		parts = append(parts, header+"\n"+strings.Join(indented, "\n"))

		if item.URL != "" {
			parts = append(parts, "  URL: "+item.URL)
		}
	}

	return strings.TrimRight(strings.Join(parts, "\n"), "\n") + "\n"
}

// RenderIssueBody fills the capability-update template with the merged PR's
// metadata. Templates are authored as plain markdown, so simple placeholder
// replacement is intentional.
func RenderIssueBody(template string, pr models.PullRequest, discussion []models.DiscussionItem) string {
	description := strings.TrimSpace(pr.Body)
	if description == "" {
		description = "(no PR description)"
	}

	comments := strings.TrimRight(RenderDiscussion(discussion), "\n")
	if comments == "" {
		comments = "(no PR comments)"
	}

	replacer := strings.NewReplacer(
		"{{PR_NUMBER}}", fmt.Sprintf("%d", pr.Number),
		"{{PR_TITLE}}", pr.Title,
		"{{PR_DESCRIPTION}}", description,
		"{{PR_COMMENTS}}", comments,
	)
	return replacer.Replace(template)
}
