package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-typeahead-engine/internal/engine"
)

// asyncThreshold is the candidate count above which additions run as a
// background job instead of inline.
const asyncThreshold = 1000

// AddCandidatesRequest defines the structure for adding candidates to a collection.
type AddCandidatesRequest struct {
	Candidates []string `json:"candidates" binding:"required"`
}

// AddCandidatesHandler handles adding candidate strings to a collection.
// Small batches are added inline; large batches run as a background job.
func (api *API) AddCandidatesHandler(c *gin.Context) {
	collectionName := c.Param("collectionName")
	accessor, err := api.engine.GetCollection(collectionName)
	if err != nil {
		SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound, "Collection '"+collectionName+"' not found")
		return
	}

	var req AddCandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Candidates) == 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "No candidates provided")
		return
	}

	if concreteEngine, ok := api.engine.(*engine.Engine); ok && len(req.Candidates) > asyncThreshold {
		jobID, err := concreteEngine.AddCandidatesAsync(collectionName, req.Candidates)
		if err != nil {
			SendError(c, http.StatusInternalServerError, ErrorCodeJobExecutionFailed, "Failed to start async candidate addition: "+err.Error())
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":          "accepted",
			"message":         fmt.Sprintf("Candidate addition started for collection '%s' (%d candidates)", collectionName, len(req.Candidates)),
			"job_id":          jobID,
			"candidate_count": len(req.Candidates),
		})
		return
	}

	added, err := accessor.AddCandidates(req.Candidates)
	if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to add candidates to collection '"+collectionName+"': "+err.Error())
		return
	}
	if err := api.engine.PersistCollection(collectionName); err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodePersistenceFailed, "Candidates added but persistence failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d candidate(s) added to collection '%s'", added, collectionName),
		"added":   added,
		"skipped": len(req.Candidates) - added,
	})
}

// GetCandidatesHandler lists candidates in a collection with pagination.
func (api *API) GetCandidatesHandler(c *gin.Context) {
	collectionName := c.Param("collectionName")

	concreteEngine, ok := api.engine.(*engine.Engine)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Candidate listing not supported by this engine")
		return
	}

	texts, err := concreteEngine.CollectionTexts(collectionName)
	if err != nil {
		SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound, "Collection '"+collectionName+"' not found")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))
	if pageSize < 1 {
		pageSize = 100
	}

	total := len(texts)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": texts[start:end],
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}

// DeleteCandidateHandler removes a single candidate by its exact text.
func (api *API) DeleteCandidateHandler(c *gin.Context) {
	collectionName := c.Param("collectionName")
	text := c.Param("text")

	accessor, err := api.engine.GetCollection(collectionName)
	if err != nil {
		SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound, "Collection '"+collectionName+"' not found")
		return
	}

	if err := accessor.DeleteCandidate(text); err != nil {
		if strings.Contains(err.Error(), "not found") {
			SendError(c, http.StatusNotFound, ErrorCodeCandidateNotFound, "Candidate '"+text+"' not found in collection '"+collectionName+"'")
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to delete candidate: "+err.Error())
		return
	}
	if err := api.engine.PersistCollection(collectionName); err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodePersistenceFailed, "Candidate deleted but persistence failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Candidate deleted from collection '" + collectionName + "'"})
}

// DeleteAllCandidatesHandler handles the request to delete all candidates from a collection.
func (api *API) DeleteAllCandidatesHandler(c *gin.Context) {
	collectionName := c.Param("collectionName")
	accessor, err := api.engine.GetCollection(collectionName)
	if err != nil {
		SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound, "Collection '"+collectionName+"' not found")
		return
	}

	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err := concreteEngine.DeleteAllCandidatesAsync(collectionName)
		if err != nil {
			SendError(c, http.StatusInternalServerError, ErrorCodeJobExecutionFailed, "Failed to start async candidate deletion: "+err.Error())
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": fmt.Sprintf("Candidate deletion started for collection '%s'", collectionName),
			"job_id":  jobID,
		})
		return
	}

	if err := accessor.DeleteAllCandidates(); err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to delete candidates from collection '"+collectionName+"': "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All candidates deleted from collection '" + collectionName + "'"})
}
