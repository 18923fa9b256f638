package app

import (
	"github.com/example/relay/internal/ports/primary"
)

// LoopServiceImpl composes the four public actions behind one facade. Each
// embedded service stays independently constructible for tests.
type LoopServiceImpl struct {
	*SnapshotServiceImpl
	*GapServiceImpl
	*PromoteServiceImpl
	*MergeServiceImpl
}

// NewLoopService creates the composed loop facade.
func NewLoopService(snapshot *SnapshotServiceImpl, gap *GapServiceImpl, promote *PromoteServiceImpl, merge *MergeServiceImpl) *LoopServiceImpl {
	return &LoopServiceImpl{
		SnapshotServiceImpl: snapshot,
		GapServiceImpl:      gap,
		PromoteServiceImpl:  promote,
		MergeServiceImpl:    merge,
	}
}

// Ensure LoopServiceImpl implements the interface
var _ primary.LoopService = (*LoopServiceImpl)(nil)
