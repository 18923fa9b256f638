package secondary

import (
	"context"

	"github.com/example/relay/internal/models"
)

// QueueStore is the engine's view of the queue filesystem: an append-only
// pending directory and a processed directory items move into on promotion.
type QueueStore interface {
	// ListPending returns pending queue files sorted by creation order
	// (filename lexical order as the deterministic tiebreak).
	ListPending(ctx context.Context) ([]models.QueueItem, error)

	// Read returns the raw content of a pending file.
	Read(ctx context.Context, name string) ([]byte, error)

	// MovePendingToProcessed moves (never copies) a pending file to the
	// processed location using an atomic rename, and returns the
	// destination path. An already-moved source with an existing
	// destination is a success; a destination conflict with the source
	// still present fails loudly.
	MovePendingToProcessed(ctx context.Context, name string) (string, error)
}
