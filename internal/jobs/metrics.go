package jobs

import (
	"sync"
	"time"

	"github.com/gcbaptista/go-typeahead-engine/model"
)

// JobMetrics tracks job execution statistics
type JobMetrics struct {
	mu                sync.RWMutex
	jobsCreated       map[model.JobType]int64
	jobsCompleted     map[model.JobType]int64
	jobsFailed        map[model.JobType]int64
	totalExecutionMs  map[model.JobType]int64
	statusTransitions map[string]int64
}

// JobMetricsData is a point-in-time snapshot of job metrics
type JobMetricsData struct {
	JobsCreated        map[model.JobType]int64 `json:"jobs_created"`
	JobsCompleted      map[model.JobType]int64 `json:"jobs_completed"`
	JobsFailed         map[model.JobType]int64 `json:"jobs_failed"`
	AverageExecutionMs map[model.JobType]int64 `json:"average_execution_ms"`
	StatusTransitions  map[string]int64        `json:"status_transitions"`
}

// NewJobMetrics creates a new metrics tracker
func NewJobMetrics() *JobMetrics {
	return &JobMetrics{
		jobsCreated:       make(map[model.JobType]int64),
		jobsCompleted:     make(map[model.JobType]int64),
		jobsFailed:        make(map[model.JobType]int64),
		totalExecutionMs:  make(map[model.JobType]int64),
		statusTransitions: make(map[string]int64),
	}
}

// RecordJobCreated increments the created counter for a job type
func (jm *JobMetrics) RecordJobCreated(jobType model.JobType) {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	jm.jobsCreated[jobType]++
}

// RecordJobCompleted records a successful job completion with execution time
func (jm *JobMetrics) RecordJobCompleted(jobType model.JobType, executionTime time.Duration) {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	jm.jobsCompleted[jobType]++
	jm.totalExecutionMs[jobType] += executionTime.Milliseconds()
}

// RecordJobFailed increments the failed counter for a job type
func (jm *JobMetrics) RecordJobFailed(jobType model.JobType) {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	jm.jobsFailed[jobType]++
}

// RecordJobStatusChange tracks status transitions
func (jm *JobMetrics) RecordJobStatusChange(from, to model.JobStatus) {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	jm.statusTransitions[string(from)+"->"+string(to)]++
}

// GetMetrics returns a snapshot of current metrics
func (jm *JobMetrics) GetMetrics() JobMetricsData {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	data := JobMetricsData{
		JobsCreated:        make(map[model.JobType]int64, len(jm.jobsCreated)),
		JobsCompleted:      make(map[model.JobType]int64, len(jm.jobsCompleted)),
		JobsFailed:         make(map[model.JobType]int64, len(jm.jobsFailed)),
		AverageExecutionMs: make(map[model.JobType]int64, len(jm.jobsCompleted)),
		StatusTransitions:  make(map[string]int64, len(jm.statusTransitions)),
	}

	for k, v := range jm.jobsCreated {
		data.JobsCreated[k] = v
	}
	for k, v := range jm.jobsCompleted {
		data.JobsCompleted[k] = v
		if v > 0 {
			data.AverageExecutionMs[k] = jm.totalExecutionMs[k] / v
		}
	}
	for k, v := range jm.jobsFailed {
		data.JobsFailed[k] = v
	}
	for k, v := range jm.statusTransitions {
		data.StatusTransitions[k] = v
	}

	return data
}
