package engine

import (
	"fmt"

	"github.com/gcbaptista/go-typeahead-engine/config"
	"github.com/gcbaptista/go-typeahead-engine/internal/errors"
	"github.com/gcbaptista/go-typeahead-engine/internal/suggest"
	"github.com/gcbaptista/go-typeahead-engine/services"
	"github.com/gcbaptista/go-typeahead-engine/store"
)

// CollectionInstance holds all components and services for a single typeahead
// collection. It implements the services.CollectionAccessor interface.
type CollectionInstance struct {
	settings       *config.CollectionSettings
	CandidateStore *store.CandidateStore
	suggester      *suggest.Service
}

// NewCollectionInstance creates and initializes a new CollectionInstance.
func NewCollectionInstance(settings config.CollectionSettings) (*CollectionInstance, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("collection name cannot be empty in settings")
	}
	settings.ApplyDefaults()

	candidateStore := store.NewCandidateStore()

	suggestService, err := suggest.NewService(candidateStore, &settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggest service: %w", err)
	}

	return &CollectionInstance{
		settings:       &settings,
		CandidateStore: candidateStore,
		suggester:      suggestService,
	}, nil
}

// AddCandidates adds texts to the collection and returns how many were stored.
// Empty strings and duplicates are skipped.
func (c *CollectionInstance) AddCandidates(texts []string) (int, error) {
	added := c.CandidateStore.Add(texts)
	c.suggester.InvalidateCache()
	return added, nil
}

// DeleteCandidate removes a single candidate by its exact text.
func (c *CollectionInstance) DeleteCandidate(text string) error {
	if !c.CandidateStore.Delete(text) {
		return errors.NewCandidateNotFoundError(text, c.settings.Name)
	}
	c.suggester.InvalidateCache()
	return nil
}

// DeleteAllCandidates removes every candidate from the collection.
func (c *CollectionInstance) DeleteAllCandidates() error {
	c.CandidateStore.DeleteAll()
	c.suggester.InvalidateCache()
	return nil
}

// Suggest delegates to the underlying suggest service.
func (c *CollectionInstance) Suggest(query services.SuggestQuery) (services.SuggestResult, error) {
	return c.suggester.Suggest(query)
}

// Settings returns the configuration settings for this collection.
func (c *CollectionInstance) Settings() config.CollectionSettings {
	return *c.settings
}

// Count returns the number of candidates in the collection.
func (c *CollectionInstance) Count() int {
	return c.CandidateStore.Len()
}
