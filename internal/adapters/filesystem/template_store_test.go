package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/relay/internal/core/gap"
)

func TestEmbeddedTemplates(t *testing.T) {
	store := NewTemplateStore("")

	body, err := store.LoadGapAnalysisTemplate()
	if err != nil {
		t.Fatalf("LoadGapAnalysisTemplate failed: %v", err)
	}
	if body == "" {
		t.Fatal("expected non-empty gap-analysis template")
	}

	capBody, err := store.LoadCapabilityUpdateTemplate()
	if err != nil {
		t.Fatalf("LoadCapabilityUpdateTemplate failed: %v", err)
	}
	for _, placeholder := range []string{"{{PR_NUMBER}}", "{{PR_TITLE}}", "{{PR_DESCRIPTION}}", "{{PR_COMMENTS}}"} {
		if !strings.Contains(capBody, placeholder) {
			t.Errorf("capability template missing placeholder %s", placeholder)
		}
	}
}

func TestOverrideDirTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	override := "Compare the project goal against current capabilities and file the largest gap."
	if err := os.WriteFile(filepath.Join(dir, "gap-analysis.md"), []byte(override), 0644); err != nil {
		t.Fatalf("failed to write override: %v", err)
	}

	store := NewTemplateStore(dir)
	body, err := store.LoadGapAnalysisTemplate()
	if err != nil {
		t.Fatalf("LoadGapAnalysisTemplate failed: %v", err)
	}
	if body != override {
		t.Errorf("expected override content, got %q", body)
	}

	// The capability template has no override here; embedded is the fallback.
	capBody, err := store.LoadCapabilityUpdateTemplate()
	if err != nil {
		t.Fatalf("LoadCapabilityUpdateTemplate failed: %v", err)
	}
	if !strings.Contains(capBody, "{{PR_NUMBER}}") {
		t.Error("expected embedded capability template as fallback")
	}
}

func TestCorruptedOverrideRejected(t *testing.T) {
	dir := t.TempDir()
	unsafe := "First, create a new gap analysis issue, then continue."
	if err := os.WriteFile(filepath.Join(dir, "gap-analysis.md"), []byte(unsafe), 0644); err != nil {
		t.Fatalf("failed to write override: %v", err)
	}

	store := NewTemplateStore(dir)
	_, err := store.LoadGapAnalysisTemplate()
	if !errors.Is(err, gap.ErrTemplateCorrupted) {
		t.Errorf("expected ErrTemplateCorrupted, got %v", err)
	}
}
