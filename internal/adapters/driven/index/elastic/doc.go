// Package elastic provides a remote index gateway speaking the
// Elasticsearch REST API over HTTP.
//
// Tracks and playlists share one index with a typeless mapping. Each
// document is stored under "<entity kind>:<id>" and carries its kind in a
// keyword field so lookups can filter on it.
package elastic
