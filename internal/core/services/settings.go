package services

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyLibraryPath      = "library.path"
	KeyIndexBackend     = "index.backend"
	KeyIndexName        = "index.name"
	KeyIndexPath        = "index.path"
	KeyESURL            = "elasticsearch.url"
	KeyESTimeout        = "elasticsearch.timeout_seconds"
	KeyESRequestsPerSec = "elasticsearch.requests_per_second"
	KeyIndexingWorkers  = "indexing.workers"
)

var settingKeys = []string{
	KeyLibraryPath,
	KeyIndexBackend,
	KeyIndexName,
	KeyIndexPath,
	KeyESURL,
	KeyESTimeout,
	KeyESRequestsPerSec,
	KeyIndexingWorkers,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Library: domain.LibrarySettings{
			Path: s.getString(KeyLibraryPath, defaults.Library.Path),
		},
		Index: domain.IndexSettings{
			Backend: s.getBackend(defaults.Index.Backend),
			Name:    s.getString(KeyIndexName, defaults.Index.Name),
			Path:    s.configStore.GetString(KeyIndexPath), // empty means the data directory default
		},
		Elasticsearch: domain.ElasticsearchSettings{
			URL:               s.getString(KeyESURL, defaults.Elasticsearch.URL),
			Timeout:           s.getTimeout(defaults.Elasticsearch.Timeout),
			RequestsPerSecond: s.getFloat(KeyESRequestsPerSec, defaults.Elasticsearch.RequestsPerSecond),
		},
		Indexing: domain.IndexingSettings{
			Workers: s.getInt(KeyIndexingWorkers, defaults.Indexing.Workers),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyLibraryPath, settings.Library.Path},
		{KeyIndexBackend, settings.Index.Backend.String()},
		{KeyIndexName, settings.Index.Name},
		{KeyIndexPath, settings.Index.Path},
		{KeyESURL, settings.Elasticsearch.URL},
		{KeyESTimeout, int(settings.Elasticsearch.Timeout / time.Second)},
		{KeyESRequestsPerSec, settings.Elasticsearch.RequestsPerSecond},
		{KeyIndexingWorkers, settings.Indexing.Workers},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case KeyLibraryPath, KeyIndexPath:
		parsed = value
	case KeyIndexName:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		parsed = value
	case KeyIndexBackend:
		backend := domain.IndexBackend(strings.ToLower(value))
		if !backend.IsValid() {
			return fmt.Errorf("%w: unknown backend %q", domain.ErrInvalidInput, value)
		}
		parsed = backend.String()
	case KeyESURL:
		if err := validateURL(value); err != nil {
			return err
		}
		parsed = value
	case KeyESTimeout, KeyIndexingWorkers:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = n
	case KeyESRequestsPerSec:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = f
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the names of all settable keys.
func (s *SettingsService) Keys() []string {
	return slices.Clone(settingKeys)
}

// Validate checks that current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Library.Path == "" {
		return fmt.Errorf("%w: library path is not set", domain.ErrInvalidInput)
	}
	if !settings.Index.Backend.IsValid() {
		return fmt.Errorf("%w: invalid index backend: %s", domain.ErrInvalidInput, settings.Index.Backend)
	}
	if settings.Index.Backend.IsRemote() {
		if err := validateURL(settings.Elasticsearch.URL); err != nil {
			return err
		}
	}
	if settings.Indexing.Workers < 1 {
		return fmt.Errorf("%w: indexing workers must be at least 1", domain.ErrInvalidInput)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return def
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	if v := s.configStore.GetFloat(key); v >= 0 {
		return v
	}
	return def
}

func (s *SettingsService) getBackend(def domain.IndexBackend) domain.IndexBackend {
	backend := domain.IndexBackend(s.configStore.GetString(KeyIndexBackend))
	if backend.IsValid() {
		return backend
	}
	return def
}

func (s *SettingsService) getTimeout(def time.Duration) time.Duration {
	if v := s.configStore.GetInt(KeyESTimeout); v > 0 {
		return time.Duration(v) * time.Second
	}
	return def
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: elasticsearch url must be an absolute http(s) URL, got %q", domain.ErrInvalidInput, raw)
	}
	return nil
}
