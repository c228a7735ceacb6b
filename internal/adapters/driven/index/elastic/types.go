package elastic

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

type searchRequest struct {
	Size           int            `json:"size"`
	TrackTotalHits bool           `json:"track_total_hits,omitempty"`
	Query          map[string]any `json:"query"`
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []hit `json:"hits"`
	} `json:"hits"`
}

type hit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

func (h hit) document() (domain.StoredDocument, error) {
	kind, id, err := domain.ParseDocumentKey(h.ID)
	if err != nil {
		return domain.StoredDocument{}, err
	}
	return domain.StoredDocument{Kind: kind, ID: id, Source: []byte(h.Source)}, nil
}

// failure is the error body Elasticsearch returns with non-2xx responses.
type failure struct {
	Status int `json:"status"`
	Error  struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

func (f *failure) wrap(op string) error {
	if f.Error.Reason == "" {
		return fmt.Errorf("%w: %s: status %d", domain.ErrStoreUnavailable, op, f.Status)
	}
	return fmt.Errorf("%w: %s: status %d: %s: %s", domain.ErrStoreUnavailable, op, f.Status, f.Error.Type, f.Error.Reason)
}

// parseFailure returns nil for successful responses.
func parseFailure(resp *resty.Response) *failure {
	if !resp.IsError() {
		return nil
	}
	f := &failure{}
	_ = json.Unmarshal(resp.Body(), f)
	f.Status = resp.StatusCode()
	return f
}

func boolFilter(clauses ...map[string]any) map[string]any {
	return map[string]any{
		"bool": map[string]any{"filter": clauses},
	}
}

func termClause(field string, value any) map[string]any {
	return map[string]any{
		"term": map[string]any{field: value},
	}
}
