// Package fuzzy ranks candidates against a typed query using
// case-insensitive subsequence matching. Scores land in [0, 1]: zero
// means the query is not a subsequence of the candidate, 1 is an exact
// match, and contiguous or word-aligned matches beat scattered ones.
package fuzzy

import "strings"

// emptyQueryScore is what every candidate gets when nothing has been
// typed yet, so providers can surface their full listing.
const emptyQueryScore = 0.1

const (
	contiguityBonus = 0.5
	boundaryBonus   = 0.8
	prefixBonus     = 1.0
)

// Score returns the match quality of query against candidate.
func Score(query, candidate string) float64 {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	c := []rune(strings.ToLower(candidate))

	if len(q) == 0 {
		return emptyQueryScore
	}
	if len(c) == 0 || len(q) > len(c) {
		return 0
	}

	matched := 0
	raw := 0.0
	firstIdx := -1
	lastIdx := -1
	prevIdx := -2

	for i := 0; i < len(c) && matched < len(q); i++ {
		if c[i] != q[matched] {
			continue
		}
		raw += 1.0
		if i == prevIdx+1 && prevIdx >= 0 {
			raw += contiguityBonus
		} else if isBoundary(c, i) {
			raw += boundaryBonus
		}
		if firstIdx < 0 {
			firstIdx = i
			if i == 0 {
				raw += prefixBonus
			}
		}
		prevIdx = i
		lastIdx = i
		matched++
	}

	if matched < len(q) {
		return 0
	}

	// Best case: one contiguous run anchored at the start.
	maxRaw := float64(len(q)) + contiguityBonus*float64(len(q)-1) + boundaryBonus + prefixBonus
	score := raw / maxRaw

	// Spread-out matches and long candidates rank below tight ones.
	gaps := (lastIdx - firstIdx + 1) - len(q)
	gapRatio := float64(gaps) / float64(len(c))
	lengthRatio := float64(len(q)) / float64(len(c))
	score *= (1 - 0.3*gapRatio) * (0.7 + 0.3*lengthRatio)

	if score <= 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Matches reports whether query is a case-insensitive subsequence of
// candidate. An empty query matches everything.
func Matches(query, candidate string) bool {
	return Score(query, candidate) > 0
}

func isBoundary(c []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := c[i-1]
	return prev == ' ' || prev == '-' || prev == '_' || prev == '/' || prev == '.'
}
