// Package fuzzy implements the typeahead matching kernel: boundary-aligned
// fuzzy prefix matching of a search query against candidate strings, with
// deterministic scoring and highlight extraction.
//
// Matching is a two-phase process per candidate. A case-insensitive literal
// substring search runs first; if it fails, the query is aligned against
// successive word, case-shift and punctuation boundaries of the candidate
// ("fuzzy prefix matching"). There is no edit-distance component: a query
// either aligns with the candidate's unit-initial characters or it does not.
//
// Example: "usam" matches "the [u]nited [s]tates of [am]erica".
package fuzzy

// Scoring constants. A contiguous match of length n contributes
// scoreContiguous*n^2, so long runs are rewarded super-linearly:
// "[abc]" outranks "[ab]ott [c]hemicals".
const (
	scoreStartOfString = 1000
	scoreWordPrefix    = 200
	scoreContiguous    = 300
)

// Range is a contiguous matched byte span within a candidate string.
// Within a match, ranges are ordered by start offset and pairwise
// non-overlapping; directly adjacent spans are merged into one.
type Range struct {
	Start int `json:"start"`
	Len   int `json:"len"`
}

// End returns the byte offset one past the last matched byte.
func (r Range) End() int {
	return r.Start + r.Len
}

// score computes the contribution of a single range. wordPrefix reports
// whether the range starts a word; every range produced by fuzzy alignment
// is anchored at a unit boundary and therefore a word prefix.
func (r Range) score(wordPrefix bool) int {
	score := scoreContiguous * r.Len * r.Len
	switch {
	case r.Start == 0:
		score += scoreStartOfString
	case wordPrefix && r.Start < scoreWordPrefix:
		// The bonus decays with distance from the start of the string and
		// bottoms out at zero for offsets past the constant.
		score += scoreWordPrefix - r.Start
	}
	return score
}

// Match is the score and matched ranges for one (candidate, query) pair.
// A score of 0 with no ranges is the trivial match of an empty query.
type Match struct {
	Score  int     `json:"score"`
	Ranges []Range `json:"ranges"`
}

// Candidate is a searchable string with an optional precomputed boundary
// index. The boundary index is derived solely from Text and must be treated
// as immutable once published; see Boundaries.
type Candidate struct {
	Text       string
	Boundaries []int
}

// FilterResult is one ranked entry produced by Filter or MatchOne.
// Highlights alternate unmatched/matched substrings of Text, starting with
// an unmatched (possibly empty) segment.
type FilterResult struct {
	Text       string   `json:"text"`
	Score      int      `json:"score"`
	Highlights []string `json:"highlights"`
}
