package domain

// FieldType is the index type of a schema field.
type FieldType string

// Supported field types.
const (
	// FieldTypeString is analysed full text.
	FieldTypeString FieldType = "string"

	// FieldTypeLong is a 64-bit integer.
	FieldTypeLong FieldType = "long"

	// FieldTypeBoolean is true or false.
	FieldTypeBoolean FieldType = "boolean"

	// FieldTypeDate is a timestamp parsed with DateFormat.
	FieldTypeDate FieldType = "date"
)

// RawSuffix names the unanalysed sub-field used for exact match and sorting.
const RawSuffix = "raw"

// DateOptionalTime is the date format of export timestamps: an ISO-8601 date
// with an optional time part.
const DateOptionalTime = "dateOptionalTime"

// FieldSpec describes one field of an index mapping.
type FieldSpec struct {
	// Name is the field name.
	Name string

	// Type is the index type.
	Type FieldType

	// DateFormat is the date parser name for date fields.
	DateFormat string

	// Raw adds an unanalysed "<Name>.raw" sub-field.
	Raw bool
}

// RawField returns the name of the unanalysed sub-field.
func (f FieldSpec) RawField() string {
	return f.Name + "." + RawSuffix
}

// IndexSchema is the create-index payload.
type IndexSchema struct {
	// Name is the index name.
	Name string

	// Kinds maps each entity kind to its declared fields.
	// A kind with no fields is indexed dynamically.
	Kinds map[EntityKind][]FieldSpec
}

// Field looks up a declared field of kind k.
func (s IndexSchema) Field(k EntityKind, name string) (FieldSpec, bool) {
	for _, f := range s.Kinds[k] {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// TrackFields returns the fixed track schema.
func TrackFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldAlbum, Type: FieldTypeString, Raw: true},
		{Name: FieldAlbumArtist, Type: FieldTypeString, Raw: true},
		{Name: FieldArtist, Type: FieldTypeString, Raw: true},
		{Name: FieldCompilation, Type: FieldTypeBoolean},
		{Name: FieldDateAdded, Type: FieldTypeDate, DateFormat: DateOptionalTime},
		{Name: FieldDisabled, Type: FieldTypeBoolean},
		{Name: FieldGenre, Type: FieldTypeString, Raw: true},
		{Name: FieldLocation, Type: FieldTypeString, Raw: true},
		{Name: FieldName, Type: FieldTypeString, Raw: true},
		{Name: FieldPlayCount, Type: FieldTypeLong},
		{Name: FieldRating, Type: FieldTypeLong},
		{Name: FieldTrackID, Type: FieldTypeLong},
		{Name: FieldTrackNumber, Type: FieldTypeLong},
		{Name: FieldYear, Type: FieldTypeLong},
		{Name: FieldContent, Type: FieldTypeString},
	}
}

// LibrarySchema returns the schema for an index holding tracks and playlists.
func LibrarySchema(name string) IndexSchema {
	if name == "" {
		name = DefaultIndexName
	}
	return IndexSchema{
		Name: name,
		Kinds: map[EntityKind][]FieldSpec{
			EntityTrack:    TrackFields(),
			EntityPlaylist: nil,
		},
	}
}
