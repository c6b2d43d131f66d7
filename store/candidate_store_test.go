package store

import (
	"bytes"
	"encoding/gob"
	"reflect"
	"testing"
)

func TestCandidateStoreAdd(t *testing.T) {
	cs := NewCandidateStore()

	added := cs.Add([]string{"Las Vegas", "Los Angeles", "", "Las Vegas"})
	if added != 2 {
		t.Errorf("Add returned %d, want 2 (duplicate and empty string skipped)", added)
	}
	if cs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cs.Len())
	}
	if !reflect.DeepEqual(cs.Texts(), []string{"Las Vegas", "Los Angeles"}) {
		t.Errorf("Texts() = %v, insertion order not preserved", cs.Texts())
	}

	// Boundaries are precomputed on admission.
	for _, candidate := range cs.Candidates {
		if len(candidate.Boundaries) == 0 {
			t.Errorf("candidate %q has no precomputed boundaries", candidate.Text)
		}
	}
}

func TestCandidateStoreDelete(t *testing.T) {
	cs := NewCandidateStore()
	cs.Add([]string{"alpha", "beta", "gamma"})

	if !cs.Delete("beta") {
		t.Fatal("Delete(\"beta\") = false, want true")
	}
	if cs.Delete("beta") {
		t.Error("second Delete(\"beta\") = true, want false")
	}
	if !reflect.DeepEqual(cs.Texts(), []string{"alpha", "gamma"}) {
		t.Errorf("Texts() after delete = %v", cs.Texts())
	}

	// Position map stays consistent after the shift.
	if pos, ok := cs.TextToPos["gamma"]; !ok || pos != 1 {
		t.Errorf("TextToPos[\"gamma\"] = %d, %t; want 1, true", pos, ok)
	}

	cs.DeleteAll()
	if cs.Len() != 0 {
		t.Errorf("Len() after DeleteAll = %d, want 0", cs.Len())
	}
}

func TestCandidateStoreGobRoundTrip(t *testing.T) {
	original := NewCandidateStore()
	original.Add([]string{"FuzzBunny", "the united states of america", "a.b-c"})

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(original); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	restored := &CandidateStore{}
	if err := gob.NewDecoder(&buf).Decode(restored); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if !reflect.DeepEqual(restored.Texts(), original.Texts()) {
		t.Errorf("restored texts = %v, want %v", restored.Texts(), original.Texts())
	}
	// Derived data is rebuilt, not persisted.
	if !reflect.DeepEqual(restored.Candidates, original.Candidates) {
		t.Errorf("restored candidates (with boundaries) = %v, want %v", restored.Candidates, original.Candidates)
	}
	if !reflect.DeepEqual(restored.TextToPos, original.TextToPos) {
		t.Errorf("restored position map = %v, want %v", restored.TextToPos, original.TextToPos)
	}
}
