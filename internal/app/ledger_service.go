package app

import (
	"context"

	"github.com/example/relay/internal/models"
	"github.com/example/relay/internal/ports/primary"
	"github.com/example/relay/internal/ports/secondary"
)

// LedgerServiceImpl implements primary.LedgerService.
type LedgerServiceImpl struct {
	ledger secondary.ActionLedger
}

// NewLedgerService creates a new action-history service.
func NewLedgerService(ledger secondary.ActionLedger) *LedgerServiceImpl {
	return &LedgerServiceImpl{ledger: ledger}
}

// History returns the most recent recorded actions, newest first.
func (s *LedgerServiceImpl) History(ctx context.Context, limit int) ([]*models.ActionEvent, error) {
	records, err := s.ledger.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	events := make([]*models.ActionEvent, 0, len(records))
	for _, record := range records {
		events = append(events, eventFromRecord(record))
	}
	return events, nil
}

// Ensure LedgerServiceImpl implements the interface
var _ primary.LedgerService = (*LedgerServiceImpl)(nil)
