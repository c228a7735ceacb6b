package elastic

import (
	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// property is one entry of an Elasticsearch mapping.
type property map[string]any

// buildMapping renders the create-index body for schema.
// Fields declared by any kind are merged into one typeless property set.
func buildMapping(schema domain.IndexSchema) map[string]any {
	props := map[string]any{
		domain.KindField: property{"type": "keyword"},
	}
	for _, fields := range schema.Kinds {
		for _, f := range fields {
			props[f.Name] = fieldProperty(f)
		}
	}
	return map[string]any{
		"mappings": map[string]any{
			"dynamic":    true,
			"properties": props,
		},
	}
}

func fieldProperty(f domain.FieldSpec) property {
	switch f.Type {
	case domain.FieldTypeLong:
		return property{"type": "long"}
	case domain.FieldTypeBoolean:
		return property{"type": "boolean"}
	case domain.FieldTypeDate:
		return property{"type": "date", "format": dateFormat(f.DateFormat)}
	default:
		p := property{"type": "text"}
		if f.Raw {
			p["fields"] = map[string]any{
				domain.RawSuffix: property{"type": "keyword"},
			}
		}
		return p
	}
}

// dateFormat maps a schema date format onto the snake_case name current
// Elasticsearch releases accept.
func dateFormat(format string) string {
	switch format {
	case "", domain.DateOptionalTime:
		return "date_optional_time"
	default:
		return format
	}
}
