package fuzzy

import (
	"runtime"
	"sort"
	"strings"
	"sync"
)

// PrepareCandidates wraps raw strings as Candidates with precomputed
// boundary indices, so that repeated Filter calls over the same corpus skip
// the boundary scan.
func PrepareCandidates(texts []string) []Candidate {
	candidates := make([]Candidate, len(texts))
	for i, text := range texts {
		candidates[i] = Candidate{Text: text, Boundaries: Boundaries(text)}
	}
	return candidates
}

// Filter evaluates query against every candidate, drops non-matches, and
// ranks the rest by score descending with exact ties broken by candidate
// text descending (byte-lexicographic), so the order is fully deterministic
// regardless of input order.
//
// When the trimmed query is empty every candidate is returned with score 0
// and its whole text as the single highlight segment, in input order (the
// "show all, unranked" case).
//
// Candidate evaluation is independent per candidate and fans out across a
// fixed pool of workers; candidates are only read, and each worker writes to
// its own result slots. The final sort is the single merge point.
func Filter(candidates []Candidate, query string) []FilterResult {
	normalized := strings.ToLower(strings.TrimSpace(query))

	evaluated := make([]FilterResult, len(candidates))
	matched := make([]bool, len(candidates))

	workers := runtime.NumCPU()
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				candidate := candidates[i]
				match, ok := scoreLowered(candidate.Text, candidate.Boundaries, normalized)
				if !ok {
					continue
				}
				evaluated[i] = FilterResult{
					Text:       candidate.Text,
					Score:      match.Score,
					Highlights: HighlightRanges(candidate.Text, match.Ranges),
				}
				matched[i] = true
			}
		}()
	}
	for i := range candidates {
		indices <- i
	}
	close(indices)
	wg.Wait()

	results := make([]FilterResult, 0, len(candidates))
	for i := range evaluated {
		if matched[i] {
			results = append(results, evaluated[i])
		}
	}

	if normalized != "" {
		sort.Slice(results, func(i, j int) bool {
			if results[i].Score != results[j].Score {
				return results[i].Score > results[j].Score
			}
			return results[i].Text > results[j].Text
		})
	}

	return results
}
