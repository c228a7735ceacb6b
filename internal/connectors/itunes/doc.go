// Package itunes reads track and playlist records out of an iTunes
// "iTunes Music Library.xml" export.
//
// The export is a single property list. Each call to Tracks or Playlists
// opens the file afresh and streams it, so memory stays flat regardless of
// library size and the two passes never share a reader.
package itunes
