package services

import (
	"context"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driving"
)

// Ensure RunService implements the interface.
var _ driving.RunHistory = (*RunService)(nil)

// RunService reports past indexing runs.
type RunService struct {
	store driven.RunStore
}

// NewRunService creates a new run service. A nil store reports no history.
func NewRunService(store driven.RunStore) *RunService {
	return &RunService{store: store}
}

// Recent returns up to limit runs, newest first.
func (s *RunService) Recent(ctx context.Context, limit int) ([]domain.Run, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx, limit)
}

// Latest returns the most recent run of an operation.
func (s *RunService) Latest(ctx context.Context, op domain.Operation) (*domain.Run, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	return s.store.Latest(ctx, op)
}
