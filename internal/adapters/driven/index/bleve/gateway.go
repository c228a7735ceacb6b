package bleve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
)

// Ensure Gateway implements the interface.
var _ driven.IndexGateway = (*Gateway)(nil)

// Gateway is a driven.IndexGateway over a Bleve index directory.
// The index is opened lazily on first use and kept open until Close.
type Gateway struct {
	path      string
	maxWindow int

	mu    sync.Mutex
	index bleve.Index
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithMaxResultWindow overrides the lookup ceiling.
func WithMaxResultWindow(n int) Option {
	return func(g *Gateway) {
		g.maxWindow = n
	}
}

// New returns a gateway for the index directory at path.
// Nothing is opened or created until the first call.
func New(path string, opts ...Option) *Gateway {
	g := &Gateway{path: path, maxWindow: domain.MaxResultWindow}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Path returns the index directory.
func (g *Gateway) Path() string {
	return g.path
}

// CreateIndex creates the index directory with a mapping built from schema.
func (g *Gateway) CreateIndex(_ context.Context, schema domain.IndexSchema) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.index != nil || exists(g.path) {
		return fmt.Errorf("%w: index at %s", domain.ErrAlreadyExists, g.path)
	}
	idx, err := bleve.New(g.path, buildMapping(schema))
	if err != nil {
		if errors.Is(err, bleve.ErrorIndexPathExists) {
			return fmt.Errorf("%w: index at %s", domain.ErrAlreadyExists, g.path)
		}
		return fmt.Errorf("%w: creating index: %w", domain.ErrStoreUnavailable, err)
	}
	g.index = idx
	return nil
}

// DeleteIndex closes the index and removes its directory.
func (g *Gateway) DeleteIndex(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.index != nil {
		if err := g.index.Close(); err != nil {
			return fmt.Errorf("%w: closing index: %w", domain.ErrStoreUnavailable, err)
		}
		g.index = nil
	}
	if err := os.RemoveAll(g.path); err != nil {
		return fmt.Errorf("%w: removing index: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Upsert indexes fields under the document key for kind and id.
func (g *Gateway) Upsert(_ context.Context, kind domain.EntityKind, id int64, fields map[string]any) error {
	idx, err := g.open()
	if err != nil {
		return err
	}

	source, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding %s %d: %w", kind, id, err)
	}

	doc := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		doc[k] = v
	}
	doc[domain.KindField] = kind.String()
	doc[sourceField] = string(source)

	if err := idx.Index(domain.DocumentKey(kind, domain.FormatID(id)), doc); err != nil {
		return fmt.Errorf("%w: indexing %s %d: %w", domain.ErrStoreUnavailable, kind, id, err)
	}
	return nil
}

// FindByIDs returns the documents of kind with the given ids, in the order
// the ids first appear.
func (g *Gateway) FindByIDs(ctx context.Context, kind domain.EntityKind, ids []string) ([]domain.StoredDocument, error) {
	seen := make(map[string]struct{}, len(ids))
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		key := domain.DocumentKey(kind, id)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	idx, err := g.open()
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery(keys), min(len(keys), g.maxWindow), 0, false)
	req.Fields = []string{sourceField}
	res, err := idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: searching ids: %w", domain.ErrStoreUnavailable, err)
	}
	if res.Total > uint64(g.maxWindow) {
		return nil, fmt.Errorf("%w: %d documents match, limit is %d", domain.ErrResultSetTooLarge, res.Total, g.maxWindow)
	}

	byKey := make(map[string]domain.StoredDocument, len(res.Hits))
	for _, hit := range res.Hits {
		doc, err := stored(hit.ID, hit.Fields)
		if err != nil {
			return nil, err
		}
		byKey[hit.ID] = doc
	}

	docs := make([]domain.StoredDocument, 0, len(byKey))
	for _, key := range keys {
		if doc, ok := byKey[key]; ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// FindByTerm returns the first document of kind whose field holds value.
func (g *Gateway) FindByTerm(ctx context.Context, kind domain.EntityKind, field string, value domain.Value) (*domain.StoredDocument, error) {
	match, err := termQuery(field, value)
	if err != nil {
		return nil, err
	}

	idx, err := g.open()
	if err != nil {
		return nil, err
	}

	kindQuery := bleve.NewTermQuery(kind.String())
	kindQuery.SetField(domain.KindField)

	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(kindQuery, match), 1, 0, false)
	req.Fields = []string{sourceField}
	res, err := idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: searching %s: %w", domain.ErrStoreUnavailable, field, err)
	}
	if len(res.Hits) == 0 {
		return nil, fmt.Errorf("%w: %s with %s = %s", domain.ErrNotFound, kind, field, value)
	}

	doc, err := stored(res.Hits[0].ID, res.Hits[0].Fields)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Refresh is a no-op: Bleve writes are searchable once Index returns.
func (g *Gateway) Refresh(context.Context) error {
	return nil
}

// Close closes the index if it is open.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.index == nil {
		return nil
	}
	err := g.index.Close()
	g.index = nil
	return err
}

// open returns the open index, opening the directory on first use.
func (g *Gateway) open() (bleve.Index, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.index != nil {
		return g.index, nil
	}
	if !exists(g.path) {
		return nil, fmt.Errorf("%w: no index at %s, run create-mapping first", domain.ErrNotFound, g.path)
	}
	idx, err := bleve.Open(g.path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening index: %w", domain.ErrStoreUnavailable, err)
	}
	g.index = idx
	return idx, nil
}

func termQuery(field string, value domain.Value) (query.Query, error) {
	switch value.Kind() {
	case domain.KindText:
		s, _ := value.AsText()
		q := bleve.NewTermQuery(s)
		q.SetField(field)
		return q, nil
	case domain.KindInteger:
		n, _ := value.AsInteger()
		f := float64(n)
		inclusive := true
		q := bleve.NewNumericRangeInclusiveQuery(&f, &f, &inclusive, &inclusive)
		q.SetField(field)
		return q, nil
	case domain.KindBoolean:
		b, _ := value.AsBoolean()
		q := bleve.NewBoolFieldQuery(b)
		q.SetField(field)
		return q, nil
	case domain.KindDate:
		// Datetime fields hold instants, so equality is a closed range.
		d, _ := value.AsDate()
		inclusive := true
		q := bleve.NewDateRangeInclusiveQuery(d, d, &inclusive, &inclusive)
		q.SetField(field)
		return q, nil
	default:
		return nil, fmt.Errorf("%w: cannot match %s on %s", domain.ErrUnsupportedType, value.Kind(), field)
	}
}

func stored(key string, fields map[string]any) (domain.StoredDocument, error) {
	kind, id, err := domain.ParseDocumentKey(key)
	if err != nil {
		return domain.StoredDocument{}, err
	}
	source, ok := fields[sourceField].(string)
	if !ok {
		return domain.StoredDocument{}, fmt.Errorf("%w: %s has no stored source", domain.ErrStoreUnavailable, key)
	}
	return domain.StoredDocument{Kind: kind, ID: id, Source: []byte(source)}, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
