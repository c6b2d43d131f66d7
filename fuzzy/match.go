package fuzzy

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Score evaluates query against a single candidate and returns its Match.
// The boolean result is false when the candidate does not match; that is a
// regular outcome, not an error. An empty candidate never matches; an empty
// (or whitespace-only) query trivially matches everything with score 0 and
// no ranges.
//
// boundaries is an optional precomputed Boundaries(text) result; pass nil to
// have it computed on demand. Callers that evaluate many queries against an
// unchanged candidate should precompute it once.
func Score(text string, boundaries []int, query string) (Match, bool) {
	return scoreLowered(text, boundaries, strings.ToLower(strings.TrimSpace(query)))
}

// MatchOne is the single-candidate convenience combining Score and
// HighlightRanges.
func MatchOne(text, query string) (FilterResult, bool) {
	match, ok := Score(text, nil, query)
	if !ok {
		return FilterResult{}, false
	}
	return FilterResult{
		Text:       text,
		Score:      match.Score,
		Highlights: HighlightRanges(text, match.Ranges),
	}, true
}

// scoreLowered runs the per-candidate state machine. query must already be
// trimmed and lowercased.
//
// A query whose first byte is a double quote requests literal-substring
// semantics: the leading quote is always stripped, a trailing quote is
// stripped when present (it is optional so matching stays incremental while
// the user types), and the fuzzy fallback is disabled entirely.
func scoreLowered(text string, boundaries []int, query string) (Match, bool) {
	if len(text) == 0 {
		return Match{}, false
	}
	if len(query) == 0 {
		return Match{}, true
	}

	quoted := query[0] == '"'
	needle := query
	if quoted {
		end := len(query)
		if end > 1 && query[end-1] == '"' {
			end--
		}
		needle = query[1:end]
		if len(needle) == 0 {
			// Nothing but quotes matches like an empty query.
			return Match{}, true
		}
	}

	lower := strings.ToLower(text)

	// Substring fast path.
	if idx := strings.Index(lower, needle); idx >= 0 {
		rng := Range{Start: idx, Len: len(needle)}
		wordPrefix := false
		if idx > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:idx])
			wordPrefix = !unicode.IsLetter(prev) && !unicode.IsNumber(prev)
		}
		return Match{Score: rng.score(wordPrefix), Ranges: []Range{rng}}, true
	}

	// A single character that is not a substring cannot fuzzy-match either,
	// and a quoted query asked for substring semantics only.
	if len(needle) == 1 || quoted {
		return Match{}, false
	}

	if boundaries == nil {
		boundaries = Boundaries(text)
	}

	// One alignment attempt per boundary whose unit-initial character equals
	// the query's first character, so the number of attempts tracks how often
	// that character recurs rather than the candidate length.
	first := needle[0]
	for i := 0; i < len(boundaries)-1; i++ {
		if lower[boundaries[i]] != first {
			continue
		}
		if ranges := alignFrom(i, needle, lower, boundaries); ranges != nil {
			score := 0
			for _, r := range ranges {
				score += r.score(true)
			}
			return Match{Score: score, Ranges: ranges}, true
		}
	}

	return Match{}, false
}
