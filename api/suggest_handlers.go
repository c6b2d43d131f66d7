package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-typeahead-engine/fuzzy"
	"github.com/gcbaptista/go-typeahead-engine/services"
)

// SuggestRequest defines the structure for suggestion queries.
type SuggestRequest struct {
	Query    string `json:"query"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// SuggestHandler handles typeahead suggestion requests against a collection.
// Request Body: SuggestRequest
func (api *API) SuggestHandler(c *gin.Context) {
	collectionName := c.Param("collectionName")

	accessor, err := api.engine.GetCollection(collectionName)
	if err != nil {
		SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound, "Collection '"+collectionName+"' not found")
		return
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid suggest request body: "+err.Error())
		return
	}

	result, err := accessor.Suggest(services.SuggestQuery{
		Query:    req.Query,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		SendError(c, http.StatusInternalServerError, ErrorCodeSuggestFailed, "Error performing suggest on collection '"+collectionName+"': "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// MatchRequest defines the structure for the standalone match utility.
type MatchRequest struct {
	Text  string `json:"text"`
	Query string `json:"query"`
}

// MatchResponse is the result of matching a single query against a single text.
type MatchResponse struct {
	Matched    bool     `json:"matched"`
	Score      int      `json:"score"`
	Highlights []string `json:"highlights,omitempty"`
}

// MatchHandler scores a single query against a single text without touching
// any collection. Useful for debugging ranking behavior.
func (api *API) MatchHandler(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid match request body: "+err.Error())
		return
	}

	result, ok := fuzzy.MatchOne(req.Text, req.Query)
	if !ok {
		c.JSON(http.StatusOK, MatchResponse{Matched: false})
		return
	}

	c.JSON(http.StatusOK, MatchResponse{
		Matched:    true,
		Score:      result.Score,
		Highlights: result.Highlights,
	})
}
