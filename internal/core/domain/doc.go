// Package domain defines the core business entities for tunesearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Value: A loosely typed plist leaf (text, integer, boolean, string list)
//   - RawRecord: One key/value record walked out of the library export
//   - TrackDocument: A normalised track, ready for the search index
//   - PlaylistDocument: A normalised playlist with its resolved tracks
//   - IndexSchema: The field mapping published to the search index
//   - Run: One recorded indexing run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
