package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-typeahead-engine/config"
	"github.com/gcbaptista/go-typeahead-engine/internal/engine"
	"github.com/gcbaptista/go-typeahead-engine/services"
)

func setupTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	testDir, err := os.MkdirTemp("", "api_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.RemoveAll(testDir); err != nil {
			t.Logf("Failed to remove test directory: %v", err)
		}
	})

	eng := engine.NewEngine(testDir)
	t.Cleanup(eng.Close)
	return eng
}

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	SetupRoutes(router, eng)
	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheckHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	w := performRequest(router, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %q", resp["status"])
	}
}

func TestCreateCollectionHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "valid collection creation",
			requestBody:    config.CollectionSettings{Name: "movies"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate collection",
			requestBody:    config.CollectionSettings{Name: "movies"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing collection name",
			requestBody:    config.CollectionSettings{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "name with path separator",
			requestBody:    config.CollectionSettings{Name: "a/b"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, "POST", "/collections", tt.requestBody)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d (body: %s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAddAndSuggestFlow(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	w := performRequest(router, "POST", "/collections", config.CollectionSettings{Name: "files"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create collection: %d %s", w.Code, w.Body.String())
	}

	w = performRequest(router, "PUT", "/collections/files/candidates", AddCandidatesRequest{
		Candidates: []string{"fuzzBunny.ts", "fixtures.ts", "README.md"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to add candidates: %d %s", w.Code, w.Body.String())
	}

	w = performRequest(router, "POST", "/collections/files/_suggest", SuggestRequest{Query: "fb"})
	if w.Code != http.StatusOK {
		t.Fatalf("Suggest failed: %d %s", w.Code, w.Body.String())
	}

	var result services.SuggestResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse suggest response: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("Expected 1 hit, got %d", result.Total)
	}
	if result.Hits[0].Text != "fuzzBunny.ts" {
		t.Errorf("Expected hit 'fuzzBunny.ts', got %q", result.Hits[0].Text)
	}
	if result.QueryID == "" {
		t.Error("Expected non-empty query ID")
	}
}

func TestSuggestHandler_CollectionNotFound(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	w := performRequest(router, "POST", "/collections/missing/_suggest", SuggestRequest{Query: "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if apiErr.Code != ErrorCodeCollectionNotFound {
		t.Errorf("Expected error code %s, got %s", ErrorCodeCollectionNotFound, apiErr.Code)
	}
	if apiErr.RequestID == "" {
		t.Error("Expected request ID in error response")
	}
}

func TestGetCandidatesHandler_Pagination(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	performRequest(router, "POST", "/collections", config.CollectionSettings{Name: "nums"})
	performRequest(router, "PUT", "/collections/nums/candidates", AddCandidatesRequest{
		Candidates: []string{"one", "two", "three"},
	})

	w := performRequest(router, "GET", "/collections/nums/candidates?page=2&page_size=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to list candidates: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Candidates []string `json:"candidates"`
		Total      int      `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("Expected total 3, got %d", resp.Total)
	}
	if len(resp.Candidates) != 1 || resp.Candidates[0] != "three" {
		t.Errorf("Expected page 2 to be [three], got %v", resp.Candidates)
	}
}

func TestDeleteCandidateHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	performRequest(router, "POST", "/collections", config.CollectionSettings{Name: "del"})
	performRequest(router, "PUT", "/collections/del/candidates", AddCandidatesRequest{
		Candidates: []string{"keep", "drop"},
	})

	w := performRequest(router, "DELETE", "/collections/del/candidates/drop", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to delete candidate: %d %s", w.Code, w.Body.String())
	}

	w = performRequest(router, "DELETE", "/collections/del/candidates/drop", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 deleting missing candidate, got %d", w.Code)
	}
}

func TestUpdateCollectionSettingsHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	performRequest(router, "POST", "/collections", config.CollectionSettings{Name: "cfg"})

	pageSize := 42
	w := performRequest(router, "PATCH", "/collections/cfg/settings", CollectionSettingsUpdate{
		DefaultPageSize: &pageSize,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to update settings: %d %s", w.Code, w.Body.String())
	}

	settings, err := eng.GetCollectionSettings("cfg")
	if err != nil {
		t.Fatalf("Failed to get settings: %v", err)
	}
	if settings.DefaultPageSize != 42 {
		t.Errorf("Expected page size 42, got %d", settings.DefaultPageSize)
	}

	// Empty update body is rejected
	w = performRequest(router, "PATCH", "/collections/cfg/settings", CollectionSettingsUpdate{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty update, got %d", w.Code)
	}
}

func TestRenameCollectionHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	performRequest(router, "POST", "/collections", config.CollectionSettings{Name: "old"})

	w := performRequest(router, "POST", "/collections/old/rename", RenameCollectionRequest{NewName: "old"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for same-name rename, got %d", w.Code)
	}

	w = performRequest(router, "POST", "/collections/old/rename", RenameCollectionRequest{NewName: "new"})
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to rename collection: %d %s", w.Code, w.Body.String())
	}

	w = performRequest(router, "GET", "/collections/new", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected renamed collection to exist, got %d", w.Code)
	}
	w = performRequest(router, "GET", "/collections/old", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected old collection to be gone, got %d", w.Code)
	}
}

func TestMatchHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	w := performRequest(router, "POST", "/match", MatchRequest{Text: "FuzzBunny", Query: "fb"})
	if w.Code != http.StatusOK {
		t.Fatalf("Match failed: %d %s", w.Code, w.Body.String())
	}

	var resp MatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse match response: %v", err)
	}
	if !resp.Matched {
		t.Fatal("Expected a match")
	}
	if resp.Score == 0 {
		t.Error("Expected non-zero score")
	}
	if len(resp.Highlights) == 0 {
		t.Error("Expected highlights")
	}

	w = performRequest(router, "POST", "/match", MatchRequest{Text: "abc", Query: "zx"})
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse match response: %v", err)
	}
	if resp.Matched {
		t.Error("Expected no match for disjoint query")
	}
}

func TestDeleteAllCandidatesHandler_Async(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	performRequest(router, "POST", "/collections", config.CollectionSettings{Name: "wipe"})
	performRequest(router, "PUT", "/collections/wipe/candidates", AddCandidatesRequest{
		Candidates: []string{"a", "b"},
	})

	w := performRequest(router, "DELETE", "/collections/wipe/candidates", nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected 202 for async deletion, got %d (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.JobID == "" {
		t.Fatal("Expected job ID in async response")
	}

	w = performRequest(router, "GET", "/jobs/"+resp.JobID, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 getting job, got %d", w.Code)
	}
}
