package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-typeahead-engine/config"
	"github.com/gcbaptista/go-typeahead-engine/internal/engine"
	"github.com/gcbaptista/go-typeahead-engine/services"
)

// API holds dependencies for API handlers, primarily the collection manager.
type API struct {
	engine services.CollectionManager
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.CollectionManager) *API {
	return &API{engine: engine}
}

// SetupRoutes defines all the API routes for the typeahead engine.
func SetupRoutes(router *gin.Engine, engine services.CollectionManager) {
	apiHandler := NewAPI(engine)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Standalone match utility route
	router.POST("/match", apiHandler.MatchHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
	}

	// Collection management routes
	collectionRoutes := router.Group("/collections")
	{
		collectionRoutes.POST("", apiHandler.CreateCollectionHandler)                                   // Create a new collection
		collectionRoutes.GET("", apiHandler.ListCollectionsHandler)                                     // List all collections
		collectionRoutes.GET("/:collectionName", apiHandler.GetCollectionHandler)                       // Get collection details
		collectionRoutes.DELETE("/:collectionName", apiHandler.DeleteCollectionHandler)                 // Delete a collection
		collectionRoutes.PATCH("/:collectionName/settings", apiHandler.UpdateCollectionSettingsHandler) // Update collection settings
		collectionRoutes.POST("/:collectionName/rename", apiHandler.RenameCollectionHandler)            // Rename a collection
		collectionRoutes.GET("/:collectionName/jobs", apiHandler.ListJobsHandler)                       // List jobs for a collection
		collectionRoutes.POST("/:collectionName/rebuild", apiHandler.RebuildBoundariesHandler)          // Rebuild boundary indexes

		// Candidate management routes per collection
		candidateRoutes := collectionRoutes.Group("/:collectionName/candidates")
		{
			candidateRoutes.PUT("", apiHandler.AddCandidatesHandler)          // Add candidates
			candidateRoutes.GET("", apiHandler.GetCandidatesHandler)          // List candidates with pagination
			candidateRoutes.DELETE("", apiHandler.DeleteAllCandidatesHandler) // Delete all candidates
			candidateRoutes.DELETE("/:text", apiHandler.DeleteCandidateHandler)
		}

		// Suggest route per collection
		collectionRoutes.POST("/:collectionName/_suggest", apiHandler.SuggestHandler)
	}
}

// CreateCollectionHandler handles the request to create a new collection.
// Request Body: config.CollectionSettings
func (api *API) CreateCollectionHandler(c *gin.Context) {
	var settings config.CollectionSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	if settings.Name == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Collection name is required")
		return
	}

	if err := api.engine.CreateCollection(settings); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			SendError(c, http.StatusConflict, ErrorCodeCollectionExists, err.Error())
			return
		}
		if strings.Contains(err.Error(), "invalid") {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to create collection: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Collection '" + settings.Name + "' created successfully"})
}

// ListCollectionsHandler lists all available collections.
func (api *API) ListCollectionsHandler(c *gin.Context) {
	names := api.engine.ListCollections()
	c.JSON(http.StatusOK, gin.H{"collections": names, "count": len(names)})
}

// GetCollectionHandler retrieves details about a specific collection.
func (api *API) GetCollectionHandler(c *gin.Context) {
	collectionName := c.Param("collectionName")
	accessor, err := api.engine.GetCollection(collectionName)
	if err != nil {
		SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound, "Collection '"+collectionName+"' not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings":        accessor.Settings(),
		"candidate_count": accessor.Count(),
	})
}

// DeleteCollectionHandler handles deleting a collection.
func (api *API) DeleteCollectionHandler(c *gin.Context) {
	collectionName := c.Param("collectionName")

	// Delete collection asynchronously when the engine supports jobs
	var jobID string
	var err error
	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err = concreteEngine.DeleteCollectionAsync(collectionName)
	} else {
		err = api.engine.DeleteCollection(collectionName)
	}

	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound, "Collection '"+collectionName+"' not found")
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to delete collection '"+collectionName+"': "+err.Error())
		return
	}

	if jobID != "" {
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": "Collection deletion started for '" + collectionName + "'",
			"job_id":  jobID,
		})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Collection '" + collectionName + "' deleted successfully"})
	}
}

// CollectionSettingsUpdate defines the structure for updating collection settings.
// Pointers distinguish between absent fields and explicit zero values.
type CollectionSettingsUpdate struct {
	DefaultPageSize *int `json:"default_page_size,omitempty"`
	QueryCacheSize  *int `json:"query_cache_size,omitempty"`
}

// UpdateCollectionSettingsHandler handles requests to update collection settings.
func (api *API) UpdateCollectionSettingsHandler(c *gin.Context) {
	collectionName := c.Param("collectionName")

	settings, err := api.engine.GetCollectionSettings(collectionName)
	if err != nil {
		SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound, "Collection '"+collectionName+"' not found")
		return
	}

	var update CollectionSettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	updated := false
	if update.DefaultPageSize != nil {
		settings.DefaultPageSize = *update.DefaultPageSize
		updated = true
	}
	if update.QueryCacheSize != nil {
		settings.QueryCacheSize = *update.QueryCacheSize
		updated = true
	}

	if !updated {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "No updatable settings provided")
		return
	}

	if err := api.engine.UpdateCollectionSettings(collectionName, settings); err != nil {
		if strings.Contains(err.Error(), "invalid") {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to update settings: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings for collection '" + collectionName + "' updated successfully",
		"settings": settings,
	})
}

// RenameCollectionRequest defines the structure for renaming a collection
type RenameCollectionRequest struct {
	NewName string `json:"new_name" binding:"required"`
}

// RenameCollectionHandler handles requests to rename a collection
func (api *API) RenameCollectionHandler(c *gin.Context) {
	oldName := c.Param("collectionName")

	var req RenameCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.NewName) != req.NewName {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "new_name cannot have leading or trailing whitespace")
		return
	}

	if err := api.engine.RenameCollection(oldName, req.NewName); err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound, "Collection '"+oldName+"' not found")
		case strings.Contains(err.Error(), "already exists"):
			SendError(c, http.StatusConflict, ErrorCodeCollectionExists, err.Error())
		case strings.Contains(err.Error(), "same"):
			SendError(c, http.StatusBadRequest, ErrorCodeSameName, err.Error())
		case strings.Contains(err.Error(), "invalid"):
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		default:
			SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, "Failed to rename collection: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Collection renamed successfully",
		"old_name": oldName,
		"new_name": req.NewName,
	})
}

// RebuildBoundariesHandler starts an asynchronous rebuild of the boundary
// indexes for every candidate in a collection.
func (api *API) RebuildBoundariesHandler(c *gin.Context) {
	collectionName := c.Param("collectionName")

	concreteEngine, ok := api.engine.(*engine.Engine)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError, "Boundary rebuild not supported by this engine")
		return
	}

	jobID, err := concreteEngine.RebuildBoundariesAsync(collectionName)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound, "Collection '"+collectionName+"' not found")
			return
		}
		SendError(c, http.StatusInternalServerError, ErrorCodeJobExecutionFailed, "Failed to start boundary rebuild: "+err.Error())
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Boundary rebuild started for collection '" + collectionName + "'",
		"job_id":  jobID,
	})
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-typeahead-engine",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
