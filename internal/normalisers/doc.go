// Package normalisers provides the normalisers that project raw library
// records onto the index schema. Each subpackage handles one entity kind:
//
//   - track: filters non-music items and builds TrackDocuments
//   - playlist: filters system playlists and resolves PlaylistDocument tracks
//
// Skipping a record is an expected outcome, not an error: normalisers report
// skips through the result type and reserve errors for malformed input.
package normalisers
