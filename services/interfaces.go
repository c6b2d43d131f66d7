package services

import (
	"github.com/gcbaptista/go-typeahead-engine/config"
	"github.com/gcbaptista/go-typeahead-engine/model"
)

// SuggestHit represents a single candidate in the suggest results, including
// its relevance score and the alternating unmatched/matched highlight
// segments used to render the match.
type SuggestHit struct {
	Text       string   `json:"text"`
	Score      int      `json:"score"`
	Highlights []string `json:"highlights"`
}

// SuggestResult is the paginated response for one suggest query.
type SuggestResult struct {
	Hits     []SuggestHit `json:"hits"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Took     int64        `json:"took"`     // milliseconds
	QueryID  string       `json:"query_id"` // unique UUID for this suggest query
}

// SuggestQuery carries one typeahead query against a collection. An empty
// (or whitespace-only) query returns every candidate, unranked, in insertion
// order.
type SuggestQuery struct {
	Query    string `json:"query"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// CandidateWriter defines operations for changing a collection's candidates
type CandidateWriter interface {
	AddCandidates(texts []string) (int, error)
	DeleteCandidate(text string) error
	DeleteAllCandidates() error
}

// Suggester defines operations for querying a collection
type Suggester interface {
	Suggest(query SuggestQuery) (SuggestResult, error)
}

// CollectionAccessor combines candidate writes and suggest reads for a
// single collection.
type CollectionAccessor interface {
	CandidateWriter
	Suggester
	Settings() config.CollectionSettings
	Count() int
}

// CollectionManager manages the lifecycle of candidate collections
type CollectionManager interface {
	CreateCollection(settings config.CollectionSettings) error
	GetCollection(name string) (CollectionAccessor, error)
	GetCollectionSettings(name string) (config.CollectionSettings, error)
	UpdateCollectionSettings(name string, settings config.CollectionSettings) error
	RenameCollection(oldName, newName string) error
	DeleteCollection(name string) error
	ListCollections() []string
	PersistCollection(name string) error
}

// JobManager defines operations for inspecting background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(collectionName string, status *model.JobStatus) []*model.Job
}
