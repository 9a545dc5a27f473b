package aggregate

import (
	"math"
	"strings"
)

// Relevance scores how well a title matches a query. Exact matches
// score 100, prefix matches 90, substring matches 70, and anything
// else the rounded fraction of query words found in the title scaled
// to 50.
func Relevance(title, query string) int {
	lowerTitle := strings.ToLower(title)
	lowerQuery := strings.ToLower(query)

	switch {
	case lowerTitle == lowerQuery:
		return 100
	case strings.HasPrefix(lowerTitle, lowerQuery):
		return 90
	case strings.Contains(lowerTitle, lowerQuery):
		return 70
	}

	words := strings.Fields(lowerQuery)
	if len(words) == 0 {
		return 0
	}

	matches := 0
	for _, word := range words {
		if strings.Contains(lowerTitle, word) {
			matches++
		}
	}
	return int(math.Round(float64(matches) / float64(len(words)) * 50))
}
