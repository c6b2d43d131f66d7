package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-typeahead-engine/internal/engine"
	"github.com/gcbaptista/go-typeahead-engine/model"
	"github.com/gcbaptista/go-typeahead-engine/services"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	if jobManager, ok := api.engine.(services.JobManager); ok {
		job, err := jobManager.GetJob(jobID)
		if err != nil {
			SendError(c, http.StatusNotFound, ErrorCodeJobNotFound, "Job not found: "+err.Error())
			return
		}

		c.JSON(http.StatusOK, job)
	} else {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job management not supported by this engine")
	}
}

// ListJobsHandler handles requests to list jobs for a collection
func (api *API) ListJobsHandler(c *gin.Context) {
	collectionName := c.Param("collectionName")
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	if jobManager, ok := api.engine.(services.JobManager); ok {
		jobs := jobManager.ListJobs(collectionName, statusFilter)
		c.JSON(http.StatusOK, gin.H{
			"jobs":            jobs,
			"collection_name": collectionName,
			"total":           len(jobs),
		})
	} else {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job management not supported by this engine")
	}
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	if engineWithMetrics, ok := api.engine.(*engine.Engine); ok {
		c.JSON(http.StatusOK, gin.H{"metrics": engineWithMetrics.GetJobMetrics()})
	} else {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Job metrics not supported by this engine")
	}
}
