// Package config provides configuration structures for the typeahead engine.
// It defines per-collection settings such as pagination defaults and the
// size of the suggest query cache.
package config

import (
	"strings"
)

// CollectionSettings contains all configuration options for one candidate
// collection.
type CollectionSettings struct {
	Name            string `json:"name"`              // Unique name for the collection
	DefaultPageSize int    `json:"default_page_size"` // Page size applied when a suggest query does not specify one
	QueryCacheSize  int    `json:"query_cache_size"`  // Number of recent query results kept in the LRU cache (0 uses the default)
}

const (
	defaultPageSize       = 10
	defaultQueryCacheSize = 256
)

// ApplyDefaults applies default values to unset (zero) fields.
func (settings *CollectionSettings) ApplyDefaults() {
	if settings.DefaultPageSize == 0 {
		settings.DefaultPageSize = defaultPageSize
	}
	if settings.QueryCacheSize == 0 {
		settings.QueryCacheSize = defaultQueryCacheSize
	}
}

// Validate checks the settings for basic consistency and returns a list of
// human-readable problems, empty when the settings are usable.
func (settings *CollectionSettings) Validate() []string {
	var problems []string

	if strings.TrimSpace(settings.Name) == "" {
		problems = append(problems, "Collection name cannot be empty or whitespace-only")
	}
	if strings.ContainsAny(settings.Name, "/\\") {
		problems = append(problems, "Collection name cannot contain path separators")
	}
	if settings.DefaultPageSize < 0 {
		problems = append(problems, "default_page_size cannot be negative")
	}
	if settings.QueryCacheSize < 0 {
		problems = append(problems, "query_cache_size cannot be negative")
	}

	return problems
}
