package fuzzy

// alignFrom attempts to consume every byte of query by walking forward
// through the boundary units of lowerText, starting at the unit that begins
// at boundaries[skipIdx]. Within a unit, candidate and query bytes are
// consumed in lockstep while they are equal; spaces are transparent on both
// sides (a candidate space advances only the candidate, a query space only
// the query). The first real mismatch ends the unit, with no backtracking
// within it, and whatever matched so far is recorded as a range, merged
// with the previous range when the two are exactly adjacent.
//
// Returns the accumulated ranges once the query is fully consumed, or nil if
// the units run out first. Both query and lowerText must already be
// lowercased.
func alignFrom(skipIdx int, query, lowerText string, boundaries []int) []Range {
	ranges := make([]Range, 0, 4)
	qi := 0

	for i := skipIdx; i < len(boundaries)-1; i++ {
		start := boundaries[i]
		end := boundaries[i+1]
		ti := start
		matchLen := 0

		for ti < end && qi < len(query) {
			if lowerText[ti] == query[qi] {
				ti++
				qi++
				matchLen++
				continue
			}
			if lowerText[ti] == ' ' {
				ti++
				continue
			}
			if query[qi] == ' ' {
				qi++
				continue
			}
			break
		}

		if matchLen > 0 {
			if n := len(ranges); n > 0 && ranges[n-1].End() == start {
				ranges[n-1].Len += matchLen
			} else {
				ranges = append(ranges, Range{Start: start, Len: matchLen})
			}
		}

		if qi == len(query) {
			return ranges
		}
	}

	return nil
}
