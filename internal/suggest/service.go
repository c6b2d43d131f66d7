// Package suggest implements the typeahead suggestion logic for a single
// collection. It runs the fuzzy matcher over the collection's candidates and
// caches ranked results per normalized query.
package suggest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gcbaptista/go-typeahead-engine/config"
	"github.com/gcbaptista/go-typeahead-engine/fuzzy"
	"github.com/gcbaptista/go-typeahead-engine/services"
	"github.com/gcbaptista/go-typeahead-engine/store"
)

// Service implements the suggestion logic for a single collection.
// It fulfills the services.Suggester interface.
type Service struct {
	candidateStore *store.CandidateStore
	settings       *config.CollectionSettings
	cache          *lru.Cache[string, []services.SuggestHit]
}

// NewService creates a new suggest Service.
func NewService(candidateStore *store.CandidateStore, settings *config.CollectionSettings) (*Service, error) {
	if candidateStore == nil {
		return nil, fmt.Errorf("candidate store cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}

	cacheSize := settings.QueryCacheSize
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[string, []services.SuggestHit](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}

	return &Service{
		candidateStore: candidateStore,
		settings:       settings,
		cache:          cache,
	}, nil
}

// Suggest runs the query against the collection and returns a ranked,
// paginated result set.
func (s *Service) Suggest(query services.SuggestQuery) (services.SuggestResult, error) {
	startTime := time.Now()

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = s.settings.DefaultPageSize
	}

	normalized := strings.ToLower(strings.TrimSpace(query.Query))

	hits, cached := s.cache.Get(normalized)
	if !cached {
		s.candidateStore.Mu.RLock()
		results := fuzzy.Filter(s.candidateStore.Candidates, query.Query)
		s.candidateStore.Mu.RUnlock()

		hits = make([]services.SuggestHit, len(results))
		for i, r := range results {
			hits[i] = services.SuggestHit{
				Text:       r.Text,
				Score:      r.Score,
				Highlights: r.Highlights,
			}
		}
		s.cache.Add(normalized, hits)
	}

	total := len(hits)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return services.SuggestResult{
		Hits:     hits[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Took:     time.Since(startTime).Milliseconds(),
		QueryID:  uuid.New().String(),
	}, nil
}

// InvalidateCache drops all cached query results. It must be called whenever
// the underlying candidate set changes.
func (s *Service) InvalidateCache() {
	s.cache.Purge()
}
