// Package memory provides an in-memory index gateway for tests and dry runs.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
)

// Ensure Gateway implements the interface.
var _ driven.IndexGateway = (*Gateway)(nil)

type entry struct {
	kind   domain.EntityKind
	id     int64
	fields map[string]any
	source []byte
}

// Gateway is an in-memory implementation of driven.IndexGateway.
// Writes are visible immediately; Refresh is a no-op.
type Gateway struct {
	mu        sync.RWMutex
	exists    bool
	schema    domain.IndexSchema
	docs      map[string]entry
	order     []string
	maxWindow int
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithMaxResultWindow overrides the lookup ceiling.
func WithMaxResultWindow(n int) Option {
	return func(g *Gateway) {
		g.maxWindow = n
	}
}

// New creates an empty gateway with no index.
func New(opts ...Option) *Gateway {
	g := &Gateway{
		docs:      make(map[string]entry),
		maxWindow: domain.MaxResultWindow,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CreateIndex creates the index.
func (g *Gateway) CreateIndex(_ context.Context, schema domain.IndexSchema) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.exists {
		return fmt.Errorf("%w: index %q", domain.ErrAlreadyExists, schema.Name)
	}
	g.exists = true
	g.schema = schema
	return nil
}

// DeleteIndex drops the index and its documents.
func (g *Gateway) DeleteIndex(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.exists = false
	g.schema = domain.IndexSchema{}
	g.docs = make(map[string]entry)
	g.order = nil
	return nil
}

// Exists reports whether the index has been created.
func (g *Gateway) Exists() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.exists
}

// Count returns the number of documents of kind.
func (g *Gateway) Count(kind domain.EntityKind) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, e := range g.docs {
		if e.kind == kind {
			n++
		}
	}
	return n
}

// Upsert stores a copy of fields under kind and id.
func (g *Gateway) Upsert(_ context.Context, kind domain.EntityKind, id int64, fields map[string]any) error {
	source, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding %s %d: %w", kind, id, err)
	}
	stored := make(map[string]any, len(fields))
	for k, v := range fields {
		stored[k] = v
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.exists {
		return fmt.Errorf("%w: index does not exist", domain.ErrNotFound)
	}
	key := domain.DocumentKey(kind, domain.FormatID(id))
	if _, ok := g.docs[key]; !ok {
		g.order = append(g.order, key)
	}
	g.docs[key] = entry{kind: kind, id: id, fields: stored, source: source}
	return nil
}

// FindByIDs returns the documents of kind with the given ids, in the order
// the ids first appear.
func (g *Gateway) FindByIDs(_ context.Context, kind domain.EntityKind, ids []string) ([]domain.StoredDocument, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return nil, nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	var found []domain.StoredDocument
	for _, id := range unique {
		if e, ok := g.docs[domain.DocumentKey(kind, id)]; ok {
			found = append(found, e.document())
		}
	}
	if len(found) > g.maxWindow {
		return nil, fmt.Errorf("%w: %d documents match, limit is %d", domain.ErrResultSetTooLarge, len(found), g.maxWindow)
	}
	return found, nil
}

// FindByTerm returns the first document, in insertion order, whose field equals value.
// A "<field>.raw" name matches the whole value exactly; a bare text field
// matches when value equals one of its whitespace separated terms, ignoring case.
func (g *Gateway) FindByTerm(_ context.Context, kind domain.EntityKind, field string, value domain.Value) (*domain.StoredDocument, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	name, exact := strings.CutSuffix(field, "."+domain.RawSuffix)
	for _, key := range g.order {
		e := g.docs[key]
		if e.kind != kind {
			continue
		}
		if matches(e.fields[name], value, exact) {
			doc := e.document()
			return &doc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s with %s = %s", domain.ErrNotFound, kind, field, value)
}

// Refresh is a no-op.
func (g *Gateway) Refresh(context.Context) error {
	return nil
}

// Close is a no-op.
func (g *Gateway) Close() error {
	return nil
}

func (e entry) document() domain.StoredDocument {
	source := make([]byte, len(e.source))
	copy(source, e.source)
	return domain.StoredDocument{Kind: e.kind, ID: e.id, Source: source}
}

func matches(stored any, want domain.Value, exact bool) bool {
	switch want.Kind() {
	case domain.KindInteger:
		n, _ := want.AsInteger()
		switch v := stored.(type) {
		case int64:
			return v == n
		case int:
			return int64(v) == n
		}
	case domain.KindBoolean:
		b, _ := want.AsBoolean()
		v, ok := stored.(bool)
		return ok && v == b
	case domain.KindDate:
		d, _ := want.AsDate()
		v, ok := stored.(string)
		if !ok {
			return false
		}
		t, err := time.Parse(time.RFC3339, v)
		return err == nil && t.Equal(d)
	case domain.KindText:
		s, _ := want.AsText()
		v, ok := stored.(string)
		if !ok {
			return false
		}
		if exact {
			return v == s
		}
		for _, term := range strings.Fields(v) {
			if strings.EqualFold(term, s) {
				return true
			}
		}
	}
	return false
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
