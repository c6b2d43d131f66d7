package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gcbaptista/go-typeahead-engine/config"
	"github.com/gcbaptista/go-typeahead-engine/internal/errors"
	"github.com/gcbaptista/go-typeahead-engine/internal/jobs"
	"github.com/gcbaptista/go-typeahead-engine/internal/persistence"
	"github.com/gcbaptista/go-typeahead-engine/internal/suggest"
	"github.com/gcbaptista/go-typeahead-engine/model"
	"github.com/gcbaptista/go-typeahead-engine/services"
	"github.com/gcbaptista/go-typeahead-engine/store"
)

const (
	dataDirPerm    = 0755
	settingsFile   = "settings.gob"
	candidatesFile = "candidates.gob"

	maxConcurrentJobs = 4
)

// Engine manages multiple typeahead collections.
// It implements the services.CollectionManager interface.
type Engine struct {
	mu          sync.RWMutex
	collections map[string]*CollectionInstance
	dataDir     string
	jobManager  *jobs.Manager
}

// NewEngine creates a new typeahead engine orchestrator.
func NewEngine(dataDir string) *Engine {
	eng := &Engine{
		collections: make(map[string]*CollectionInstance),
		dataDir:     dataDir,
		jobManager:  jobs.NewManager(maxConcurrentJobs),
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence for new collections if loading fails.", dataDir, err)
	}
	eng.jobManager.Start()
	eng.loadCollectionsFromDisk()
	return eng
}

// Close shuts down background workers.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// GetJob retrieves a background job by its ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns background jobs for a collection, optionally filtered by status.
func (e *Engine) ListJobs(collectionName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(collectionName, status)
}

// GetJobMetrics returns aggregate job execution metrics.
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

func (e *Engine) loadCollectionsFromDisk() {
	log.Printf("Loading collections from disk: %s", e.dataDir)
	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No collections loaded.", e.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		collectionName := item.Name()
		collectionPath := filepath.Join(e.dataDir, collectionName)
		log.Printf("Attempting to load collection: %s", collectionName)

		var settings config.CollectionSettings
		settingsPath := filepath.Join(collectionPath, settingsFile)
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			log.Printf("Warning: Failed to load settings for collection %s from %s: %v. Skipping this collection.", collectionName, settingsPath, err)
			continue
		}

		// Settings name should match the directory name
		if settings.Name != collectionName {
			log.Printf("Warning: Collection name in settings ('%s') does not match directory name ('%s') for path %s. Skipping this collection.", settings.Name, collectionName, collectionPath)
			continue
		}
		settings.ApplyDefaults()

		candidateStore := store.NewCandidateStore()
		csPath := filepath.Join(collectionPath, candidatesFile)
		if err := persistence.LoadGob(csPath, candidateStore); err != nil && err != os.ErrNotExist {
			log.Printf("Warning: Failed to load candidates for collection %s from %s: %v. Proceeding with empty store.", collectionName, csPath, err)
			candidateStore = store.NewCandidateStore()
		} else if err == os.ErrNotExist {
			log.Printf("Info: Candidates file %s not found for collection %s. Initializing empty store.", csPath, collectionName)
		}

		suggestService, err := suggest.NewService(candidateStore, &settings)
		if err != nil {
			log.Printf("Error creating suggest service for loaded collection %s: %v. Skipping.", collectionName, err)
			continue
		}

		instance := &CollectionInstance{
			settings:       &settings,
			CandidateStore: candidateStore,
			suggester:      suggestService,
		}

		e.collections[collectionName] = instance
		log.Printf("Successfully loaded collection: %s (%d candidates)", collectionName, candidateStore.Len())
	}
}

// CreateCollection creates a new collection with the given settings and persists it.
func (e *Engine) CreateCollection(settings config.CollectionSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if problems := settings.Validate(); len(problems) > 0 {
		return errors.NewValidationError("settings", fmt.Sprintf("invalid collection settings: %v", problems))
	}
	if _, exists := e.collections[settings.Name]; exists {
		return errors.NewCollectionAlreadyExistsError(settings.Name)
	}
	settings.ApplyDefaults()

	instance, err := NewCollectionInstance(settings)
	if err != nil {
		return fmt.Errorf("failed to create new collection instance for '%s': %w", settings.Name, err)
	}

	// Persist the initial state
	collectionPath := filepath.Join(e.dataDir, settings.Name)
	if err := os.MkdirAll(collectionPath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for collection %s: %w", settings.Name, err)
	}

	if err := persistence.SaveGob(filepath.Join(collectionPath, settingsFile), settings); err != nil {
		return fmt.Errorf("failed to save settings for collection %s: %w", settings.Name, err)
	}
	if err := persistence.SaveGob(filepath.Join(collectionPath, candidatesFile), instance.CandidateStore); err != nil {
		return fmt.Errorf("failed to save initial candidates for %s: %w", settings.Name, err)
	}

	e.collections[settings.Name] = instance
	log.Printf("Collection '%s' created and persisted.", settings.Name)
	return nil
}

// GetCollection retrieves a collection by its name.
func (e *Engine) GetCollection(name string) (services.CollectionAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.collections[name]
	if !exists {
		return nil, errors.NewCollectionNotFoundError(name)
	}
	return instance, nil
}

// GetCollectionSettings retrieves the settings for a specific collection.
func (e *Engine) GetCollectionSettings(name string) (config.CollectionSettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.collections[name]
	if !exists {
		return config.CollectionSettings{}, errors.NewCollectionNotFoundError(name)
	}
	return *instance.settings, nil // Return a copy
}

// UpdateCollectionSettings updates the settings for an existing collection and persists them.
func (e *Engine) UpdateCollectionSettings(name string, newSettings config.CollectionSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.collections[name]
	if !exists {
		return errors.NewCollectionNotFoundError(name)
	}

	if newSettings.Name != "" && newSettings.Name != name {
		return errors.NewValidationError("name", fmt.Sprintf("cannot change collection name from '%s' to '%s' during settings update", name, newSettings.Name))
	}
	newSettings.Name = name
	newSettings.ApplyDefaults()
	if problems := newSettings.Validate(); len(problems) > 0 {
		return errors.NewValidationError("settings", fmt.Sprintf("invalid collection settings: %v", problems))
	}

	// The query cache size may have changed, so rebuild the suggester
	suggestService, err := suggest.NewService(instance.CandidateStore, &newSettings)
	if err != nil {
		return fmt.Errorf("failed to update suggest service with new settings for '%s': %w", name, err)
	}
	instance.settings = &newSettings
	instance.suggester = suggestService

	// Persist updated settings
	settingsPath := filepath.Join(e.dataDir, name, settingsFile)
	if err := persistence.SaveGob(settingsPath, newSettings); err != nil {
		log.Printf("CRITICAL: Failed to persist updated settings for collection '%s'. In-memory settings updated, but disk is stale: %v", name, err)
		return fmt.Errorf("failed to save updated settings for collection '%s': %w", name, err)
	}

	log.Printf("Settings for collection '%s' updated and persisted.", name)
	return nil
}

// DeleteCollection removes a collection by its name from memory and disk.
func (e *Engine) DeleteCollection(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.collections[name]; !exists {
		// To be idempotent, if not in memory, check if it exists on disk to remove
		collectionPath := filepath.Join(e.dataDir, name)
		if _, err := os.Stat(collectionPath); os.IsNotExist(err) {
			return errors.NewCollectionNotFoundError(name)
		}
	} else {
		delete(e.collections, name)
	}

	collectionPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(collectionPath); err != nil {
		return fmt.Errorf("failed to delete collection data directory %s: %w", collectionPath, err)
	}
	log.Printf("Collection '%s' deleted from memory and disk.", name)
	return nil
}

// RenameCollection renames a collection, moving its persisted data to the
// new name's directory.
func (e *Engine) RenameCollection(oldName, newName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if oldName == newName {
		return errors.NewSameNameError(oldName)
	}

	instance, exists := e.collections[oldName]
	if !exists {
		return errors.NewCollectionNotFoundError(oldName)
	}
	if _, exists := e.collections[newName]; exists {
		return errors.NewCollectionAlreadyExistsError(newName)
	}

	renamed := *instance.settings
	renamed.Name = newName
	if problems := renamed.Validate(); len(problems) > 0 {
		return errors.NewValidationError("name", fmt.Sprintf("invalid new collection name: %v", problems))
	}

	// Persist under the new name first so a failure leaves the old data intact
	newPath := filepath.Join(e.dataDir, newName)
	if err := os.MkdirAll(newPath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for renamed collection %s: %w", newName, err)
	}
	if err := persistence.SaveGob(filepath.Join(newPath, settingsFile), renamed); err != nil {
		return fmt.Errorf("failed to save settings for renamed collection %s: %w", newName, err)
	}
	if err := persistence.SaveGob(filepath.Join(newPath, candidatesFile), instance.CandidateStore); err != nil {
		return fmt.Errorf("failed to save candidates for renamed collection %s: %w", newName, err)
	}

	instance.settings.Name = newName
	e.collections[newName] = instance
	delete(e.collections, oldName)

	oldPath := filepath.Join(e.dataDir, oldName)
	if err := os.RemoveAll(oldPath); err != nil {
		log.Printf("Warning: Failed to remove old collection directory %s: %v", oldPath, err)
	}

	log.Printf("Collection renamed from '%s' to '%s' successfully.", oldName, newName)
	return nil
}

// ListCollections returns a list of names of all existing collections.
func (e *Engine) ListCollections() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.collections))
	for name := range e.collections {
		names = append(names, name)
	}
	return names
}

// CollectionTexts returns the candidate texts of a collection in insertion order.
func (e *Engine) CollectionTexts(name string) ([]string, error) {
	e.mu.RLock()
	instance, exists := e.collections[name]
	e.mu.RUnlock()

	if !exists {
		return nil, errors.NewCollectionNotFoundError(name)
	}
	return instance.CandidateStore.Texts(), nil
}

// PersistCollection requests a collection instance to save its current state.
// This should be called after modifications (e.g., AddCandidates).
func (e *Engine) PersistCollection(name string) error {
	e.mu.RLock()
	instance, exists := e.collections[name]
	e.mu.RUnlock()

	if !exists {
		return errors.NewCollectionNotFoundError(name)
	}

	collectionPath := filepath.Join(e.dataDir, name)

	// CandidateStore takes its own read lock in GobEncode
	if err := persistence.SaveGob(filepath.Join(collectionPath, candidatesFile), instance.CandidateStore); err != nil {
		return fmt.Errorf("failed to save candidates for %s: %w", name, err)
	}
	log.Printf("Data for collection '%s' persisted.", name)
	return nil
}
