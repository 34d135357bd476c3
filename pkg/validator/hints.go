package validator

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxHintDistance bounds how far a suggestion may be from the input.
const maxHintDistance = 3

// suggest returns the candidate closest to value, or "" when none is close
// enough. Comparison ignores case; ties keep the earlier candidate.
func suggest(value string, candidates []string) string {
	value = strings.ToLower(value)
	best, bestDist := "", maxHintDistance+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(value, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// didYouMean formats a hint sentence for value, or "" when there is none.
func didYouMean(value string, candidates []string) string {
	if s := suggest(value, candidates); s != "" {
		return " Did you mean " + s + "?"
	}
	return ""
}
