package driven

import (
	"context"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// RunStore persists run history.
type RunStore interface {
	// Save stores or updates a run.
	Save(ctx context.Context, run domain.Run) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// List returns the most recent runs, newest first.
	// A limit of zero or less returns all runs.
	List(ctx context.Context, limit int) ([]domain.Run, error)

	// Latest returns the most recent run of an operation.
	Latest(ctx context.Context, op domain.Operation) (*domain.Run, error)
}
