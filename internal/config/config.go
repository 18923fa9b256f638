// Package config loads and saves the relay configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied by DefaultConfig and on load for unset fields.
const (
	DefaultMergeMethod      = "squash"
	DefaultQueueDir         = "planning/issue_queue"
	DefaultGhTimeoutSeconds = 30
)

// Config represents the flat relay configuration.
type Config struct {
	Version string `json:"version"`

	// Repository is the target repo in "owner/repo" form.
	Repository string `json:"repository"`

	// Assignee is the automation actor created issues are assigned to.
	Assignee string `json:"assignee,omitempty"`

	// BaseBranch is passed to gh when merging; empty means the repo default.
	BaseBranch string `json:"base_branch,omitempty"`

	// MergeMethod is one of merge, squash, rebase.
	MergeMethod string `json:"merge_method,omitempty"`

	// QueueDir holds the pending/ and processed/ subdirectories.
	QueueDir string `json:"queue_dir,omitempty"`

	// TemplateDir optionally overrides the embedded issue templates.
	TemplateDir string `json:"template_dir,omitempty"`

	// DeleteMergedBranches enables the best-effort branch delete after merge.
	DeleteMergedBranches bool `json:"delete_merged_branches,omitempty"`

	// GhTimeoutSeconds bounds each gh CLI invocation.
	GhTimeoutSeconds int `json:"gh_timeout_seconds,omitempty"`
}

// DefaultConfig returns a config with defaults filled in.
func DefaultConfig(repository string) *Config {
	return &Config{
		Version:              "1",
		Repository:           repository,
		MergeMethod:          DefaultMergeMethod,
		QueueDir:             DefaultQueueDir,
		DeleteMergedBranches: true,
		GhTimeoutSeconds:     DefaultGhTimeoutSeconds,
	}
}

// LoadConfig reads .relay/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".relay", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MergeMethod == "" {
		cfg.MergeMethod = DefaultMergeMethod
	}
	if cfg.QueueDir == "" {
		cfg.QueueDir = DefaultQueueDir
	}
	if cfg.GhTimeoutSeconds <= 0 {
		cfg.GhTimeoutSeconds = DefaultGhTimeoutSeconds
	}

	return &cfg, nil
}

// SaveConfig writes config.json to the directory's .relay subdirectory.
func SaveConfig(dir string, cfg *Config) error {
	relayDir := filepath.Join(dir, ".relay")
	if err := os.MkdirAll(relayDir, 0755); err != nil {
		return fmt.Errorf("failed to create .relay dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(relayDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// PendingDir returns the absolute pending queue directory.
func (c *Config) PendingDir(root string) string {
	return filepath.Join(root, c.QueueDir, "pending")
}

// ProcessedDir returns the absolute processed queue directory.
func (c *Config) ProcessedDir(root string) string {
	return filepath.Join(root, c.QueueDir, "processed")
}

// Validate checks the fields the engine cannot operate without.
func (c *Config) Validate() error {
	if c.Repository == "" {
		return fmt.Errorf("config: repository is required")
	}
	switch c.MergeMethod {
	case "merge", "squash", "rebase":
	default:
		return fmt.Errorf("config: invalid merge_method %q", c.MergeMethod)
	}
	return nil
}
