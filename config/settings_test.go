package config

import (
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	settings := CollectionSettings{Name: "cities"}
	settings.ApplyDefaults()

	if settings.DefaultPageSize != defaultPageSize {
		t.Errorf("DefaultPageSize = %d, want %d", settings.DefaultPageSize, defaultPageSize)
	}
	if settings.QueryCacheSize != defaultQueryCacheSize {
		t.Errorf("QueryCacheSize = %d, want %d", settings.QueryCacheSize, defaultQueryCacheSize)
	}

	// Explicit values survive defaulting.
	settings = CollectionSettings{Name: "cities", DefaultPageSize: 25, QueryCacheSize: 4}
	settings.ApplyDefaults()
	if settings.DefaultPageSize != 25 || settings.QueryCacheSize != 4 {
		t.Errorf("ApplyDefaults overwrote explicit values: %+v", settings)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		settings     CollectionSettings
		wantProblems int
	}{
		{"valid", CollectionSettings{Name: "cities", DefaultPageSize: 10, QueryCacheSize: 16}, 0},
		{"empty name", CollectionSettings{Name: ""}, 1},
		{"whitespace name", CollectionSettings{Name: "   "}, 1},
		{"path separator in name", CollectionSettings{Name: "a/b"}, 1},
		{"negative page size", CollectionSettings{Name: "cities", DefaultPageSize: -1}, 1},
		{"negative cache size", CollectionSettings{Name: "cities", QueryCacheSize: -1}, 1},
		{"multiple problems", CollectionSettings{Name: "", DefaultPageSize: -1, QueryCacheSize: -1}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := tt.settings.Validate()
			if len(problems) != tt.wantProblems {
				t.Errorf("Validate() returned %d problems (%v), want %d", len(problems), problems, tt.wantProblems)
			}
		})
	}
}
