// Package plist walks an iTunes/Music library export into raw records.
//
// The export is an XML property list. Dictionaries do not use attributes:
// each field is a <key> element followed by a sibling value element
// (<string>, <integer>, <true/>, ...). Walk streams the document and turns
// every dictionary at a selected path into a domain.RawRecord, decoding the
// value elements with Coerce.
//
// Unknown value elements are fatal rather than skipped, so a new export
// shape fails loudly instead of silently dropping data.
package plist
