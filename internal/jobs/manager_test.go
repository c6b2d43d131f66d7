package jobs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gcbaptista/go-typeahead-engine/model"
)

func TestJobManager_CreateJob(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeAddCandidates, "test-collection", map[string]string{
		"operation": "test",
	})

	if jobID == "" {
		t.Error("Expected non-empty job ID")
	}

	job, err := manager.GetJob(jobID)
	if err != nil {
		t.Fatalf("Failed to get created job: %v", err)
	}

	if job.Type != model.JobTypeAddCandidates {
		t.Errorf("Expected job type %s, got %s", model.JobTypeAddCandidates, job.Type)
	}

	if job.Status != model.JobStatusPending {
		t.Errorf("Expected job status %s, got %s", model.JobStatusPending, job.Status)
	}

	if job.CollectionName != "test-collection" {
		t.Errorf("Expected collection name 'test-collection', got %s", job.CollectionName)
	}
}

func TestJobManager_ExecuteJob(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeAddCandidates, "test-collection", nil)

	// Execute a simple job that updates progress
	err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		manager.UpdateJobProgress(jobID, 50, 100, "Halfway done")
		time.Sleep(10 * time.Millisecond) // Simulate work
		manager.UpdateJobProgress(jobID, 100, 100, "Completed")
		return nil
	})

	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	// Wait a bit for job to complete
	time.Sleep(50 * time.Millisecond)

	job, err := manager.GetJob(jobID)
	if err != nil {
		t.Fatalf("Failed to get job after execution: %v", err)
	}

	if job.Status != model.JobStatusCompleted {
		t.Errorf("Expected job status %s, got %s", model.JobStatusCompleted, job.Status)
	}

	if job.Progress == nil {
		t.Error("Expected job progress to be set")
	} else {
		if job.Progress.Current != 100 {
			t.Errorf("Expected progress current 100, got %d", job.Progress.Current)
		}
		if job.Progress.Total != 100 {
			t.Errorf("Expected progress total 100, got %d", job.Progress.Total)
		}
	}
}

func TestJobManager_ExecuteJobFailure(t *testing.T) {
	manager := NewManager(1)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeDeleteAllCandidates, "test-collection", nil)

	err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return fmt.Errorf("something went wrong")
	})
	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	job, err := manager.GetJob(jobID)
	if err != nil {
		t.Fatalf("Failed to get job after execution: %v", err)
	}

	if job.Status != model.JobStatusFailed {
		t.Errorf("Expected job status %s, got %s", model.JobStatusFailed, job.Status)
	}

	if job.Error != "something went wrong" {
		t.Errorf("Expected job error 'something went wrong', got %q", job.Error)
	}

	if job.CompletedAt == nil {
		t.Error("Expected completed timestamp to be set for failed job")
	}
}

func TestJobManager_ListJobs(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	manager.CreateJob(model.JobTypeAddCandidates, "movies", nil)
	manager.CreateJob(model.JobTypeDeleteAllCandidates, "movies", nil)
	manager.CreateJob(model.JobTypeAddCandidates, "books", nil)

	movieJobs := manager.ListJobs("movies", nil)
	if len(movieJobs) != 2 {
		t.Errorf("Expected 2 jobs for 'movies', got %d", len(movieJobs))
	}

	pending := model.JobStatusPending
	pendingBooks := manager.ListJobs("books", &pending)
	if len(pendingBooks) != 1 {
		t.Errorf("Expected 1 pending job for 'books', got %d", len(pendingBooks))
	}

	running := model.JobStatusRunning
	runningBooks := manager.ListJobs("books", &running)
	if len(runningBooks) != 0 {
		t.Errorf("Expected 0 running jobs for 'books', got %d", len(runningBooks))
	}
}

func TestJobManager_GetJobNotFound(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	_, err := manager.GetJob("does-not-exist")
	if err == nil {
		t.Error("Expected error for unknown job ID")
	}
}

func TestJobManager_Metrics(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeAddCandidates, "test-collection", nil)
	err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	metrics := manager.GetMetrics()
	if metrics.JobsCreated[model.JobTypeAddCandidates] != 1 {
		t.Errorf("Expected 1 created job, got %d", metrics.JobsCreated[model.JobTypeAddCandidates])
	}
	if metrics.JobsCompleted[model.JobTypeAddCandidates] != 1 {
		t.Errorf("Expected 1 completed job, got %d", metrics.JobsCompleted[model.JobTypeAddCandidates])
	}
}
