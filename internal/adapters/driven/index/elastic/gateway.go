package elastic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
)

const (
	// DefaultURL is the node contacted when none is configured.
	DefaultURL = "http://localhost:9200"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	alreadyExistsType = "resource_already_exists_exception"
)

// Ensure Gateway implements the interface.
var _ driven.IndexGateway = (*Gateway)(nil)

// Gateway is a driven.IndexGateway over the Elasticsearch REST API.
type Gateway struct {
	client    *resty.Client
	index     string
	limiter   *rate.Limiter
	maxWindow int
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.client.SetTimeout(d)
		}
	}
}

// WithRequestsPerSecond throttles outgoing requests. Zero disables throttling.
func WithRequestsPerSecond(rps float64) Option {
	return func(g *Gateway) {
		if rps > 0 {
			g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithMaxResultWindow overrides the lookup ceiling.
func WithMaxResultWindow(n int) Option {
	return func(g *Gateway) {
		g.maxWindow = n
	}
}

// New returns a gateway for index on the node at baseURL.
func New(baseURL, index string, opts ...Option) *Gateway {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if index == "" {
		index = domain.DefaultIndexName
	}

	g := &Gateway{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(DefaultTimeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		index:     index,
		maxWindow: domain.MaxResultWindow,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.client.OnBeforeRequest(g.throttle)
	return g
}

// Index returns the index name.
func (g *Gateway) Index() string {
	return g.index
}

// CreateIndex creates the index with the mapping for schema.
func (g *Gateway) CreateIndex(ctx context.Context, schema domain.IndexSchema) error {
	resp, err := g.request(ctx).
		SetBody(buildMapping(schema)).
		Put("/{index}")
	if err != nil {
		return unavailable("create index", err)
	}
	if failure := parseFailure(resp); failure != nil {
		if failure.Error.Type == alreadyExistsType {
			return fmt.Errorf("%w: index %q", domain.ErrAlreadyExists, g.index)
		}
		return failure.wrap("create index")
	}
	return nil
}

// DeleteIndex deletes the index. A missing index is not an error.
func (g *Gateway) DeleteIndex(ctx context.Context) error {
	resp, err := g.request(ctx).Delete("/{index}")
	if err != nil {
		return unavailable("delete index", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	if failure := parseFailure(resp); failure != nil {
		return failure.wrap("delete index")
	}
	return nil
}

// Upsert indexes fields under the document key for kind and id.
func (g *Gateway) Upsert(ctx context.Context, kind domain.EntityKind, id int64, fields map[string]any) error {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body[domain.KindField] = kind.String()

	resp, err := g.request(ctx).
		SetPathParam("id", domain.DocumentKey(kind, domain.FormatID(id))).
		SetBody(body).
		Put("/{index}/_doc/{id}")
	if err != nil {
		return unavailable(fmt.Sprintf("index %s %d", kind, id), err)
	}
	if failure := parseFailure(resp); failure != nil {
		return failure.wrap(fmt.Sprintf("index %s %d", kind, id))
	}
	return nil
}

// FindByIDs returns the documents of kind with the given ids, in the order
// the ids first appear.
func (g *Gateway) FindByIDs(ctx context.Context, kind domain.EntityKind, ids []string) ([]domain.StoredDocument, error) {
	keys := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		key := domain.DocumentKey(kind, id)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	res, err := g.search(ctx, searchRequest{
		Size:           min(len(keys), g.maxWindow),
		TrackTotalHits: true,
		Query: boolFilter(
			map[string]any{"ids": map[string]any{"values": keys}},
			termClause(domain.KindField, kind.String()),
		),
	})
	if err != nil {
		return nil, err
	}
	if res.Hits.Total.Value > g.maxWindow {
		return nil, fmt.Errorf("%w: %d documents match, limit is %d", domain.ErrResultSetTooLarge, res.Hits.Total.Value, g.maxWindow)
	}

	byKey := make(map[string]domain.StoredDocument, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		doc, err := hit.document()
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
	var term any
	switch value.Kind() {
	case domain.KindText:
		term, _ = value.AsText()
	case domain.KindInteger:
		term, _ = value.AsInteger()
	case domain.KindBoolean:
		term, _ = value.AsBoolean()
	case domain.KindDate:
		term = value.String()
	default:
		return nil, fmt.Errorf("%w: cannot match %s on %s", domain.ErrUnsupportedType, value.Kind(), field)
	}

	res, err := g.search(ctx, searchRequest{
		Size: 1,
		Query: boolFilter(
			termClause(domain.KindField, kind.String()),
			termClause(field, term),
		),
	})
	if err != nil {
		return nil, err
	}
	if len(res.Hits.Hits) == 0 {
		return nil, fmt.Errorf("%w: %s with %s = %s", domain.ErrNotFound, kind, field, value)
	}

	doc, err := res.Hits.Hits[0].document()
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Refresh makes prior writes searchable.
func (g *Gateway) Refresh(ctx context.Context) error {
	resp, err := g.request(ctx).Post("/{index}/_refresh")
	if err != nil {
		return unavailable("refresh", err)
	}
	if failure := parseFailure(resp); failure != nil {
		return failure.wrap("refresh")
	}
	return nil
}

// Close releases idle connections.
func (g *Gateway) Close() error {
	g.client.GetClient().CloseIdleConnections()
	return nil
}

func (g *Gateway) request(ctx context.Context) *resty.Request {
	return g.client.R().
		SetContext(ctx).
		SetPathParam("index", g.index)
}

func (g *Gateway) search(ctx context.Context, body searchRequest) (*searchResponse, error) {
	var out searchResponse
	resp, err := g.request(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/{index}/_search")
	if err != nil {
		return nil, unavailable("search", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: index %q does not exist, run create-mapping first", domain.ErrNotFound, g.index)
	}
	if failure := parseFailure(resp); failure != nil {
		return nil, failure.wrap("search")
	}
	return &out, nil
}

func (g *Gateway) throttle(_ *resty.Client, r *resty.Request) error {
	if g.limiter == nil {
		return nil
	}
	return g.limiter.Wait(r.Context())
}

func unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}
