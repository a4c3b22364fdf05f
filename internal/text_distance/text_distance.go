// Package text_distance finds the closest name to a misspelled one, for
// "did you mean" suggestions over small, already-materialized name sets
// (global-variable names in the current session) where similartext's
// threshold-gated Levenshtein search would be overkill.
package text_distance

// FindSimilarName returns the name in names closest to s by Levenshtein
// distance, preferring an exact match and returning "" for an empty input
// set. Ties keep the first candidate encountered.
func FindSimilarName(names []string, s string) string {
	if len(names) == 0 {
		return ""
	}
	best := names[0]
	bestDist := distance(best, s)
	for _, n := range names[1:] {
		if n == s {
			return n
		}
		if d := distance(n, s); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// FindSimilarNameFromMap is FindSimilarName over a map's keys, for the
// global-variable-name and schema-table-name lookup tables that are
// naturally maps rather than slices.
func FindSimilarNameFromMap[V any](names map[string]V, s string) string {
	if len(names) == 0 {
		return ""
	}
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	return FindSimilarName(keys, s)
}

func distance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}
