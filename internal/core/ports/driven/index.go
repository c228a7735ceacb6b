package driven

import (
	"context"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// IndexGateway is the contract with the search index.
// Implementations: Bleve (embedded), Elasticsearch (remote), memory (tests).
type IndexGateway interface {
	// CreateIndex creates the index with the given schema.
	// Returns domain.ErrAlreadyExists if the index exists.
	CreateIndex(ctx context.Context, schema domain.IndexSchema) error

	// DeleteIndex removes the index and every document in it.
	// Deleting a missing index is not an error.
	DeleteIndex(ctx context.Context) error

	// Upsert writes a document, replacing any document with the same kind and id in full.
	// Embedded backends return domain.ErrNotFound when the index does not exist;
	// remote backends may create it with a dynamic mapping.
	Upsert(ctx context.Context, kind domain.EntityKind, id int64, fields map[string]any) error

	// FindByIDs returns the documents of kind whose ids are in ids.
	// Ids with no document are dropped. An empty id set returns no documents.
	// Returns domain.ErrResultSetTooLarge if more than domain.MaxResultWindow documents match.
	FindByIDs(ctx context.Context, kind domain.EntityKind, ids []string) ([]domain.StoredDocument, error)

	// FindByTerm returns the first document of kind whose field equals value.
	// Returns domain.ErrNotFound if none matches.
	FindByTerm(ctx context.Context, kind domain.EntityKind, field string, value domain.Value) (*domain.StoredDocument, error)

	// Refresh makes all prior writes visible to searches.
	Refresh(ctx context.Context) error

	// Close releases resources.
	Close() error
}
