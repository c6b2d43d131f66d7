package fuzzy

import "fmt"

// HighlightRanges slices text into an alternating sequence of unmatched and
// matched substrings for the given ranges: unmatched, matched, unmatched,
// matched, ..., with a trailing unmatched segment only when text extends past
// the last range. The leading unmatched segment is the empty string when the
// first range starts at offset 0. Concatenating the returned slice always
// reproduces text exactly.
//
// Ranges must be the ordered, non-overlapping, non-adjacent output of the
// matching kernel. A range set violating those invariants can only come from
// a kernel bug, never from input data, so HighlightRanges panics on it.
func HighlightRanges(text string, ranges []Range) []string {
	highlights := make([]string, 0, len(ranges)*2+1)
	last := 0

	for i, r := range ranges {
		malformed := r.Len <= 0 || r.Start < last || r.End() > len(text) ||
			(i > 0 && r.Start == last)
		if malformed {
			panic(fmt.Sprintf("fuzzy: malformed match range %d..%d (previous end %d, text length %d)",
				r.Start, r.End(), last, len(text)))
		}
		highlights = append(highlights, text[last:r.Start], text[r.Start:r.End()])
		last = r.End()
	}

	if last < len(text) {
		highlights = append(highlights, text[last:])
	}

	return highlights
}
