package driving

import (
	"context"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// RunHistory reports past indexing runs.
type RunHistory interface {
	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Run, error)

	// Latest returns the most recent run of an operation.
	Latest(ctx context.Context, op domain.Operation) (*domain.Run, error)
}
