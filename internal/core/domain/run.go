package domain

import "time"

// Operation names an indexing operation.
type Operation string

// Indexing operations.
const (
	OperationDeleteIndex    Operation = "delete-index"
	OperationCreateMapping  Operation = "create-mapping"
	OperationIndexTracks    Operation = "index-tracks"
	OperationIndexPlaylists Operation = "index-playlists"
)

// RunStatus is the outcome of a run.
type RunStatus string

// Run outcomes.
const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run records one execution of an operation.
type Run struct {
	// ID is the unique run identifier.
	ID string

	// Operation is what was run.
	Operation Operation

	// Status is the outcome.
	Status RunStatus

	// Indexed is the number of documents upserted.
	Indexed int

	// Skipped is the number of records filtered out.
	Skipped int

	// Error is the failure message for failed runs.
	Error string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended.
	FinishedAt time.Time
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
