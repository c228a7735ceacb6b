package bleve

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/datetime/optional"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// sourceField holds the JSON encoding of the document as last written.
const sourceField = "stored_source"

// buildMapping translates a library schema into a Bleve index mapping.
func buildMapping(schema domain.IndexSchema) *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()
	im.TypeField = domain.KindField
	im.DefaultMapping = documentMapping(nil)

	for kind, fields := range schema.Kinds {
		im.AddDocumentMapping(kind.String(), documentMapping(fields))
	}
	return im
}

func documentMapping(fields []domain.FieldSpec) *mapping.DocumentMapping {
	dm := bleve.NewDocumentMapping()
	dm.AddFieldMappingsAt(domain.KindField, bleve.NewKeywordFieldMapping())

	source := bleve.NewTextFieldMapping()
	source.Index = false
	source.Store = true
	source.IncludeInAll = false
	source.IncludeTermVectors = false
	source.DocValues = false
	dm.AddFieldMappingsAt(sourceField, source)

	for _, f := range fields {
		dm.AddFieldMappingsAt(f.Name, fieldMappings(f)...)
	}
	return dm
}

func fieldMappings(f domain.FieldSpec) []*mapping.FieldMapping {
	switch f.Type {
	case domain.FieldTypeLong:
		return []*mapping.FieldMapping{bleve.NewNumericFieldMapping()}
	case domain.FieldTypeBoolean:
		return []*mapping.FieldMapping{bleve.NewBooleanFieldMapping()}
	case domain.FieldTypeDate:
		fm := bleve.NewDateTimeFieldMapping()
		fm.DateFormat = dateParser(f.DateFormat)
		return []*mapping.FieldMapping{fm}
	default:
		fms := []*mapping.FieldMapping{bleve.NewTextFieldMapping()}
		if f.Raw {
			raw := bleve.NewKeywordFieldMapping()
			raw.Name = f.RawField()
			fms = append(fms, raw)
		}
		return fms
	}
}

// dateParser maps a schema date format to a registered Bleve parser.
func dateParser(format string) string {
	switch format {
	case "", domain.DateOptionalTime:
		return optional.Name
	default:
		return format
	}
}
