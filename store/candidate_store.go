package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/gcbaptista/go-typeahead-engine/fuzzy"
)

// CandidateStore holds the candidate strings of one collection in insertion
// order, each with its boundary index precomputed on admission so suggest
// queries never pay the boundary scan. Texts are deduplicated: adding a
// string that is already present is a no-op.
type CandidateStore struct {
	Mu         sync.RWMutex
	Candidates []fuzzy.Candidate // Insertion order, read by suggest under RLock
	TextToPos  map[string]int    // Candidate text to position in Candidates
}

// NewCandidateStore creates an empty store.
func NewCandidateStore() *CandidateStore {
	return &CandidateStore{
		Candidates: make([]fuzzy.Candidate, 0),
		TextToPos:  make(map[string]int),
	}
}

// Add inserts the given texts, skipping duplicates and empty strings, and
// returns how many were actually added.
func (cs *CandidateStore) Add(texts []string) int {
	cs.Mu.Lock()
	defer cs.Mu.Unlock()

	added := 0
	for _, text := range texts {
		if text == "" {
			continue
		}
		if _, exists := cs.TextToPos[text]; exists {
			continue
		}
		cs.TextToPos[text] = len(cs.Candidates)
		cs.Candidates = append(cs.Candidates, fuzzy.Candidate{
			Text:       text,
			Boundaries: fuzzy.Boundaries(text),
		})
		added++
	}
	return added
}

// Delete removes a single candidate by its exact text. It reports whether
// the candidate was present.
func (cs *CandidateStore) Delete(text string) bool {
	cs.Mu.Lock()
	defer cs.Mu.Unlock()

	pos, exists := cs.TextToPos[text]
	if !exists {
		return false
	}

	cs.Candidates = append(cs.Candidates[:pos:pos], cs.Candidates[pos+1:]...)
	delete(cs.TextToPos, text)
	for i := pos; i < len(cs.Candidates); i++ {
		cs.TextToPos[cs.Candidates[i].Text] = i
	}
	return true
}

// DeleteAll removes every candidate.
func (cs *CandidateStore) DeleteAll() {
	cs.Mu.Lock()
	defer cs.Mu.Unlock()

	cs.Candidates = make([]fuzzy.Candidate, 0)
	cs.TextToPos = make(map[string]int)
}

// Len returns the number of stored candidates.
func (cs *CandidateStore) Len() int {
	cs.Mu.RLock()
	defer cs.Mu.RUnlock()
	return len(cs.Candidates)
}

// Texts returns a copy of the candidate texts in insertion order.
func (cs *CandidateStore) Texts() []string {
	cs.Mu.RLock()
	defer cs.Mu.RUnlock()

	texts := make([]string, len(cs.Candidates))
	for i, candidate := range cs.Candidates {
		texts[i] = candidate.Text
	}
	return texts
}

// gobCandidateStoreData is a helper struct for gob encoding/decoding the
// store. Only the raw texts are persisted; boundary indices and the position
// map are derived data and are rebuilt on decode.
type gobCandidateStoreData struct {
	Texts []string
}

// GobEncode implements the gob.GobEncoder interface for CandidateStore.
func (cs *CandidateStore) GobEncode() ([]byte, error) {
	cs.Mu.RLock()
	defer cs.Mu.RUnlock()

	data := gobCandidateStoreData{Texts: make([]string, len(cs.Candidates))}
	for i, candidate := range cs.Candidates {
		data.Texts[i] = candidate.Text
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to gob encode candidate store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for CandidateStore.
func (cs *CandidateStore) GobDecode(data []byte) error {
	decoded := gobCandidateStoreData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decoded); err != nil {
		return fmt.Errorf("failed to gob decode candidate store data: %w", err)
	}

	cs.Mu.Lock()
	defer cs.Mu.Unlock()

	cs.Candidates = make([]fuzzy.Candidate, 0, len(decoded.Texts))
	cs.TextToPos = make(map[string]int, len(decoded.Texts))
	for _, text := range decoded.Texts {
		if _, exists := cs.TextToPos[text]; exists {
			continue
		}
		cs.TextToPos[text] = len(cs.Candidates)
		cs.Candidates = append(cs.Candidates, fuzzy.Candidate{
			Text:       text,
			Boundaries: fuzzy.Boundaries(text),
		})
	}
	return nil
}
