// Package bleve provides an embedded index gateway backed by a Bleve index
// directory on local disk.
//
// Tracks and playlists share one index. Each document carries its entity
// kind in the entity_kind field, which doubles as the Bleve type field so
// that each kind gets its own document mapping. The last-written document
// is kept verbatim in a stored-only field and returned as the source.
package bleve
