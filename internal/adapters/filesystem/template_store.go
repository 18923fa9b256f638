package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/relay/internal/core/gap"
	"github.com/example/relay/internal/ports/secondary"
	"github.com/example/relay/internal/templates"
)

const (
	gapTemplateFile        = "gap-analysis.md"
	capabilityTemplateFile = "capability-update.md"
)

// TemplateStore implements secondary.TemplateStore. An optional override
// directory takes precedence over the embedded templates; the embedded copies
// remain the fallback so a partial override still works.
type TemplateStore struct {
	overrideDir string
}

// NewTemplateStore creates a template store. An empty overrideDir serves
// the embedded templates only.
func NewTemplateStore(overrideDir string) *TemplateStore {
	return &TemplateStore{overrideDir: overrideDir}
}

// LoadGapAnalysisTemplate returns the validated gap-analysis issue body.
func (s *TemplateStore) LoadGapAnalysisTemplate() (string, error) {
	body, err := s.load(gapTemplateFile, templates.GapAnalysis)
	if err != nil {
		return "", err
	}
	if err := gap.ValidateTemplate(body); err != nil {
		return "", fmt.Errorf("gap-analysis template: %w", err)
	}
	return body, nil
}

// LoadCapabilityUpdateTemplate returns the capability-update issue body
// template. Placeholder substitution happens at use, not at load.
func (s *TemplateStore) LoadCapabilityUpdateTemplate() (string, error) {
	body, err := s.load(capabilityTemplateFile, templates.CapabilityUpdate)
	if err != nil {
		return "", err
	}
	if body == "" {
		return "", fmt.Errorf("capability-update template: %w", gap.ErrTemplateCorrupted)
	}
	return body, nil
}

func (s *TemplateStore) load(name string, embedded func() (string, error)) (string, error) {
	if s.overrideDir != "" {
		data, err := os.ReadFile(filepath.Join(s.overrideDir, name))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read template %s: %w", name, err)
		}
	}
	return embedded()
}

// Ensure TemplateStore implements the interface
var _ secondary.TemplateStore = (*TemplateStore)(nil)
