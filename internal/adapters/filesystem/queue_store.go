// Package filesystem contains filesystem-backed adapters: the queue store
// over the pending/ and processed/ directories and the template store.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/relay/internal/core/queue"
	"github.com/example/relay/internal/models"
	"github.com/example/relay/internal/ports/secondary"
)

// QueueStore implements secondary.QueueStore over two sibling directories.
type QueueStore struct {
	pendingDir   string
	processedDir string
}

// NewQueueStore creates a queue store rooted at the given directories.
func NewQueueStore(pendingDir, processedDir string) *QueueStore {
	return &QueueStore{pendingDir: pendingDir, processedDir: processedDir}
}

// ListPending returns pending .md files sorted lexically by name. A missing
// pending directory is an empty queue, not an error.
func (s *QueueStore) ListPending(ctx context.Context) ([]models.QueueItem, error) {
	entries, err := os.ReadDir(s.pendingDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pending dir: %w", err)
	}

	var items []models.QueueItem
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		item := models.QueueItem{
			Path:     filepath.Join(s.pendingDir, entry.Name()),
			Name:     entry.Name(),
			Category: queue.CategoryFromName(entry.Name()),
		}
		if info, err := entry.Info(); err == nil {
			item.CreatedAt = info.ModTime()
		}
		items = append(items, item)
	}

	queue.Sort(items)
	return items, nil
}

// Read returns the raw content of a pending file.
func (s *QueueStore) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.pendingDir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read queue file %s: %w", name, err)
	}
	return data, nil
}

// MovePendingToProcessed renames a pending file into the processed directory.
//
// If the destination already exists and the source is gone, a previous
// invocation completed the move and this is a success. If both exist the
// queue is in an inconsistent state and the move fails loudly rather than
// overwrite either copy.
func (s *QueueStore) MovePendingToProcessed(ctx context.Context, name string) (string, error) {
	src := filepath.Join(s.pendingDir, name)
	dst := filepath.Join(s.processedDir, name)

	_, dstErr := os.Stat(dst)
	if dstErr == nil {
		if _, srcErr := os.Stat(src); os.IsNotExist(srcErr) {
			return dst, nil
		}
		return "", fmt.Errorf("queue file %s exists in both pending and processed", name)
	}

	if err := os.MkdirAll(s.processedDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create processed dir: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("failed to move queue file %s: %w", name, err)
	}
	return dst, nil
}

// Ensure QueueStore implements the interface
var _ secondary.QueueStore = (*QueueStore)(nil)
