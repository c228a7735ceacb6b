package domain

// RawRecord is one key/value record walked out of the library export.
// It has no fixed field set; which keys are present varies per source record.
// Records are only alive between parsing and normalisation.
type RawRecord struct {
	fields map[string]Value
	order  []string
}

// Get returns the value stored under key.
func (r RawRecord) Get(key string) (Value, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Has reports whether key is present, whatever its value.
func (r RawRecord) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Text returns the string form of key, or "" when absent.
func (r RawRecord) Text(key string) string {
	v, ok := r.fields[key]
	if !ok {
		return ""
	}
	return v.String()
}

// Keys returns the field names in the order they were first set.
func (r RawRecord) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Len returns the number of fields.
func (r RawRecord) Len() int {
	return len(r.order)
}

// RecordBuilder accumulates key/value pairs into a RawRecord.
// A later Set for the same key replaces the value but keeps its position.
type RecordBuilder struct {
	fields map[string]Value
	order  []string
}

// NewRecordBuilder creates an empty builder.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{fields: make(map[string]Value)}
}

// Set assigns v to key.
func (b *RecordBuilder) Set(key string, v Value) *RecordBuilder {
	if _, ok := b.fields[key]; !ok {
		b.order = append(b.order, key)
	}
	b.fields[key] = v
	return b
}

// Build returns the accumulated record and resets the builder.
func (b *RecordBuilder) Build() RawRecord {
	r := RawRecord{fields: b.fields, order: b.order}
	b.fields = make(map[string]Value)
	b.order = nil
	return r
}
