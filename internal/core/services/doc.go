// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Indexing is a two-pass pipeline: tracks are normalised and upserted first,
// then playlists are normalised and their track references resolved against
// the tracks already in the index.
package services
