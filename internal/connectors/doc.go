// Package connectors provides the library sources the indexer reads from.
// Each connector knows how to walk one export format into raw records:
//
//   - itunes: the "iTunes Music Library.xml" property list export
package connectors
