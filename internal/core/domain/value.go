package domain

import (
	"strconv"
	"strings"
	"time"
)

// ValueKind identifies which variant a Value holds.
type ValueKind int

const (
	// KindInvalid is the zero Value.
	KindInvalid ValueKind = iota

	// KindText holds verbatim text (plist string and date).
	KindText

	// KindInteger holds a base-10 integer.
	KindInteger

	// KindBoolean holds true or false.
	KindBoolean

	// KindStringList holds an ordered list of strings.
	KindStringList

	// KindDate holds an instant. Plist dates decode as text; dates are
	// only built for lookups on date-typed fields.
	KindDate
)

// String returns the variant name.
func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindStringList:
		return "string list"
	case KindDate:
		return "date"
	default:
		return "invalid"
	}
}

// Value is a decoded plist leaf. Exactly one variant is populated.
type Value struct {
	kind    ValueKind
	text    string
	integer int64
	boolean bool
	list    []string
	date    time.Time
}

// Text creates a text value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Integer creates an integer value.
func Integer(n int64) Value {
	return Value{kind: KindInteger, integer: n}
}

// Boolean creates a boolean value.
func Boolean(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

// StringList creates a string list value. The slice is copied.
func StringList(items []string) Value {
	list := make([]string, len(items))
	copy(list, items)
	return Value{kind: KindStringList, list: list}
}

// Date creates a date value, normalised to UTC.
func Date(t time.Time) Value {
	return Value{kind: KindDate, date: t.UTC()}
}

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsValid reports whether v holds a variant.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// AsText returns the text variant.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsInteger returns the integer variant.
func (v Value) AsInteger() (int64, bool) {
	return v.integer, v.kind == KindInteger
}

// AsBoolean returns the boolean variant.
func (v Value) AsBoolean() (bool, bool) {
	return v.boolean, v.kind == KindBoolean
}

// AsStringList returns a copy of the string list variant.
func (v Value) AsStringList() ([]string, bool) {
	if v.kind != KindStringList {
		return nil, false
	}
	list := make([]string, len(v.list))
	copy(list, v.list)
	return list, true
}

// AsDate returns the date variant.
func (v Value) AsDate() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

// IsTrue reports whether v is the boolean true.
func (v Value) IsTrue() bool {
	return v.kind == KindBoolean && v.boolean
}

// String returns the plain string form of the value.
// Lists are space separated.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	case KindStringList:
		return strings.Join(v.list, " ")
	case KindDate:
		return v.date.Format(time.RFC3339)
	default:
		return ""
	}
}
