package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gcbaptista/go-typeahead-engine/fuzzy"
	"github.com/gcbaptista/go-typeahead-engine/internal/errors"
	"github.com/gcbaptista/go-typeahead-engine/model"
)

const addCandidatesBatchSize = 1000

// AddCandidatesAsync adds candidates to a collection asynchronously.
func (e *Engine) AddCandidatesAsync(collectionName string, texts []string) (string, error) {
	e.mu.RLock()
	if _, exists := e.collections[collectionName]; !exists {
		e.mu.RUnlock()
		return "", errors.NewCollectionNotFoundError(collectionName)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeAddCandidates, collectionName, map[string]string{
		"operation":       "add_candidates",
		"candidate_count": fmt.Sprintf("%d", len(texts)),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeAddCandidatesJob(ctx, collectionName, texts, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start add candidates job: %w", err)
	}

	return jobID, nil
}

func (e *Engine) executeAddCandidatesJob(_ context.Context, collectionName string, texts []string, jobID string) error {
	e.mu.RLock()
	instance, exists := e.collections[collectionName]
	e.mu.RUnlock()

	if !exists {
		return errors.NewCollectionNotFoundError(collectionName)
	}

	e.jobManager.UpdateJobProgress(jobID, 0, len(texts), "Starting candidate addition")

	added := 0
	for start := 0; start < len(texts); start += addCandidatesBatchSize {
		end := start + addCandidatesBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		n, err := instance.AddCandidates(texts[start:end])
		if err != nil {
			return fmt.Errorf("failed to add candidates to collection '%s': %w", collectionName, err)
		}
		added += n
		e.jobManager.UpdateJobProgress(jobID, end, len(texts), fmt.Sprintf("Added %d candidates", added))
	}

	e.jobManager.UpdateJobProgress(jobID, len(texts), len(texts), "Persisting collection")
	if err := e.PersistCollection(collectionName); err != nil {
		return fmt.Errorf("failed to persist collection '%s' after adding candidates: %w", collectionName, err)
	}

	log.Printf("Added %d candidates to collection '%s' (async).", added, collectionName)
	return nil
}

// DeleteAllCandidatesAsync removes every candidate from a collection asynchronously.
func (e *Engine) DeleteAllCandidatesAsync(collectionName string) (string, error) {
	e.mu.RLock()
	if _, exists := e.collections[collectionName]; !exists {
		e.mu.RUnlock()
		return "", errors.NewCollectionNotFoundError(collectionName)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeDeleteAllCandidates, collectionName, map[string]string{
		"operation": "delete_all_candidates",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeDeleteAllCandidatesJob(ctx, collectionName)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete all candidates job: %w", err)
	}

	return jobID, nil
}

func (e *Engine) executeDeleteAllCandidatesJob(_ context.Context, collectionName string) error {
	e.mu.RLock()
	instance, exists := e.collections[collectionName]
	e.mu.RUnlock()

	if !exists {
		return errors.NewCollectionNotFoundError(collectionName)
	}

	if err := instance.DeleteAllCandidates(); err != nil {
		return fmt.Errorf("failed to delete candidates from collection '%s': %w", collectionName, err)
	}
	if err := e.PersistCollection(collectionName); err != nil {
		return fmt.Errorf("failed to persist collection '%s' after deleting candidates: %w", collectionName, err)
	}

	log.Printf("Deleted all candidates from collection '%s' (async).", collectionName)
	return nil
}

// DeleteCollectionAsync deletes a collection asynchronously.
func (e *Engine) DeleteCollectionAsync(name string) (string, error) {
	e.mu.RLock()
	if _, exists := e.collections[name]; !exists {
		e.mu.RUnlock()
		return "", errors.NewCollectionNotFoundError(name)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeDeleteCollection, name, map[string]string{
		"operation": "delete_collection",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeDeleteCollectionJob(ctx, name)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete collection job: %w", err)
	}

	return jobID, nil
}

func (e *Engine) executeDeleteCollectionJob(_ context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.collections[name]; !exists {
		return errors.NewCollectionNotFoundError(name)
	}

	delete(e.collections, name)

	collectionPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(collectionPath); err != nil {
		return fmt.Errorf("failed to remove collection directory %s: %w", collectionPath, err)
	}

	log.Printf("Collection '%s' deleted successfully (async).", name)
	return nil
}

// RebuildBoundariesAsync recomputes the boundary index of every candidate in a
// collection asynchronously. Useful after upgrading to a version with changed
// boundary detection.
func (e *Engine) RebuildBoundariesAsync(collectionName string) (string, error) {
	e.mu.RLock()
	if _, exists := e.collections[collectionName]; !exists {
		e.mu.RUnlock()
		return "", errors.NewCollectionNotFoundError(collectionName)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeRebuildBoundaries, collectionName, map[string]string{
		"operation": "rebuild_boundaries",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeRebuildBoundariesJob(ctx, collectionName, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start rebuild boundaries job: %w", err)
	}

	return jobID, nil
}

func (e *Engine) executeRebuildBoundariesJob(_ context.Context, collectionName string, jobID string) error {
	e.mu.RLock()
	instance, exists := e.collections[collectionName]
	e.mu.RUnlock()

	if !exists {
		return errors.NewCollectionNotFoundError(collectionName)
	}

	store := instance.CandidateStore
	store.Mu.Lock()
	total := len(store.Candidates)
	e.jobManager.UpdateJobProgress(jobID, 0, total, "Rebuilding boundary indexes")
	for i := range store.Candidates {
		store.Candidates[i].Boundaries = fuzzy.Boundaries(store.Candidates[i].Text)
	}
	store.Mu.Unlock()

	instance.suggester.InvalidateCache()
	e.jobManager.UpdateJobProgress(jobID, total, total, "Persisting collection")
	if err := e.PersistCollection(collectionName); err != nil {
		return fmt.Errorf("failed to persist collection '%s' after rebuilding boundaries: %w", collectionName, err)
	}

	log.Printf("Rebuilt boundary indexes for %d candidates in collection '%s' (async).", total, collectionName)
	return nil
}
