// Package queue contains the pure business logic for queue-item handling:
// ordering, category derivation, and parsing pending files into issue
// title/body pairs. It performs no filesystem access.
package queue

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/example/relay/internal/models"
)

// ErrEmptyQueue is returned when no promotable pending item exists. This is a
// normal terminal outcome, not a failure.
var ErrEmptyQueue = errors.New("no pending queue items")

// MarkerPrefix tags promoted issue bodies with their source queue file so a
// retried promotion can be detected even if local state is lost.
const MarkerPrefix = "relay-queue-id:"

// Item is a parsed pending queue file ready for promotion.
type Item struct {
	Name     string
	Category models.Category
	Title    string
	Body     string
}

// CategoryFromName derives the work category from a queue filename.
// Convention: "cap-*" files are capability updates, "excluded-*" files are
// never promoted, everything else is development work.
func CategoryFromName(name string) models.Category {
	switch {
	case strings.HasPrefix(name, "cap-"):
		return models.CategoryCapability
	case strings.HasPrefix(name, "excluded-"):
		return models.CategoryExcluded
	default:
		return models.CategoryDevelopment
	}
}

// Sort orders queue items oldest-first. Filename lexical order is the
// deterministic tiebreak: directory listing order is not guaranteed stable
// across filesystems, and queue filenames embed their creation timestamp by
// convention.
func Sort(items []models.QueueItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
}

// Next selects the single oldest promotable pending item. Excluded items are
// skipped. Returns ErrEmptyQueue when nothing is promotable.
func Next(items []models.QueueItem) (models.QueueItem, error) {
	sorted := make([]models.QueueItem, len(items))
	copy(sorted, items)
	Sort(sorted)

	for _, item := range sorted {
		if item.Category == models.CategoryExcluded {
			continue
		}
		return item, nil
	}
	return models.QueueItem{}, ErrEmptyQueue
}

// Parse converts a queue file's content into an Item. The first line becomes
// the issue title (a leading markdown heading marker is cosmetic and is
// stripped), the full content becomes the body, tagged with a hidden
// idempotency marker.
func Parse(name string, content []byte) (Item, error) {
	raw := string(content)
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimSpace(raw) == "" {
		return Item{}, fmt.Errorf("queue file %s is empty", name)
	}

	first := strings.TrimRight(lines[0], "\r\n")
	if strings.TrimSpace(first) == "" {
		return Item{}, fmt.Errorf("queue file %s has an empty first line (title)", name)
	}

	title := first
	if strings.HasPrefix(strings.TrimSpace(title), "#") {
		title = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(title), "#"))
	}
	if title == "" {
		return Item{}, fmt.Errorf("queue file %s title is empty after normalization", name)
	}

	marker := Marker(name)
	body := raw
	if !strings.Contains(body, marker) {
		body = strings.TrimRight(body, "\n") + "\n\n---\n\n" + marker + "\n"
	}

	return Item{
		Name:     name,
		Category: CategoryFromName(name),
		Title:    title,
		Body:     body,
	}, nil
}

// Marker returns the hidden HTML comment embedded in promoted issue bodies.
func Marker(name string) string {
	return fmt.Sprintf("<!-- %s %s -->", MarkerPrefix, name)
}

// HasMarker reports whether an issue body carries the marker for a given
// queue file.
func HasMarker(body, name string) bool {
	return strings.Contains(body, Marker(name))
}
