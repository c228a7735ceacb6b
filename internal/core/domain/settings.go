package domain

import "time"

const unknownDescription = "Unknown"

// IndexBackend identifies the search index implementation.
type IndexBackend string

// Available index backends.
const (
	// IndexBackendBleve is an embedded on-disk index.
	IndexBackendBleve IndexBackend = "bleve"

	// IndexBackendElasticsearch is a remote Elasticsearch cluster.
	IndexBackendElasticsearch IndexBackend = "elasticsearch"
)

// IsValid returns true if the backend is recognised.
func (b IndexBackend) IsValid() bool {
	switch b {
	case IndexBackendBleve, IndexBackendElasticsearch:
		return true
	default:
		return false
	}
}

// IsRemote returns true if the backend is reached over the network.
func (b IndexBackend) IsRemote() bool {
	return b == IndexBackendElasticsearch
}

// String returns the string representation.
func (b IndexBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b IndexBackend) Description() string {
	switch b {
	case IndexBackendBleve:
		return "Bleve (embedded, on disk)"
	case IndexBackendElasticsearch:
		return "Elasticsearch (remote)"
	default:
		return unknownDescription
	}
}

// AllIndexBackends returns all available backends.
func AllIndexBackends() []IndexBackend {
	return []IndexBackend{
		IndexBackendBleve,
		IndexBackendElasticsearch,
	}
}

// LibrarySettings locates the library export.
type LibrarySettings struct {
	// Path is the export file path.
	Path string
}

// IndexSettings selects and names the search index.
type IndexSettings struct {
	// Backend is the index implementation.
	Backend IndexBackend

	// Name is the index name.
	Name string

	// Path is the on-disk location for embedded backends.
	// Empty means the default under the data directory.
	Path string
}

// ElasticsearchSettings configures the remote backend.
type ElasticsearchSettings struct {
	// URL is the cluster base URL.
	URL string

	// Timeout bounds each request.
	Timeout time.Duration

	// RequestsPerSecond throttles requests. Zero disables throttling.
	RequestsPerSecond float64
}

// IndexingSettings tunes the indexing pipeline.
type IndexingSettings struct {
	// Workers is the number of concurrent upserts per entity kind.
	Workers int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Library locates the export.
	Library LibrarySettings

	// Index selects the search index.
	Index IndexSettings

	// Elasticsearch configures the remote backend.
	Elasticsearch ElasticsearchSettings

	// Indexing tunes the pipeline.
	Indexing IndexingSettings
}

// DefaultLibraryPath is the export looked up when none is configured.
const DefaultLibraryPath = "./iTunes Music Library.xml"

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Library: LibrarySettings{
			Path: DefaultLibraryPath,
		},
		Index: IndexSettings{
			Backend: IndexBackendBleve,
			Name:    DefaultIndexName,
		},
		Elasticsearch: ElasticsearchSettings{
			URL:     "http://localhost:9200",
			Timeout: 30 * time.Second,
		},
		Indexing: IndexingSettings{
			Workers: 1,
		},
	}
}
