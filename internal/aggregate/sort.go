package aggregate

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/Groodev/komik-api/internal/models"
)

// SortByPriorityThenTitle orders records by ascending priority, then
// alphabetically. Used by the realtime listing.
func SortByPriorityThenTitle(records []models.ComicRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Priority != records[j].Priority {
			return records[i].Priority < records[j].Priority
		}
		return records[i].Title < records[j].Title
	})
}

// SortByTrendingScore orders records by descending trending score.
func SortByTrendingScore(records []models.ComicRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TrendingScore > records[j].TrendingScore
	})
}

// SortByRelevance orders records by descending relevance, keeping the
// collection order for ties.
func SortByRelevance(records []models.ComicRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Relevance > records[j].Relevance
	})
}

// SortByTitle orders records alphabetically.
func SortByTitle(records []models.ComicRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Title < records[j].Title
	})
}

// SeededOrder applies a deterministic pseudo-random order derived from
// seed and offset. The same inputs always produce the same order, so
// scroll clients can page without repeats.
func SeededOrder(records []models.ComicRecord, seed, offset int64) {
	rng := seed + offset
	hash := func(title string) int64 {
		if title == "" {
			return rng % 1000
		}
		return (int64([]rune(title)[0]) + rng) % 1000
	}
	sort.SliceStable(records, func(i, j int) bool {
		return hash(records[i].Title) < hash(records[j].Title)
	})
}

// Shuffle randomizes record order with the given source.
func Shuffle(records []models.ComicRecord, rng *rand.Rand) {
	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
}

// FilterFresh drops records whose chapter text marks the series as
// finished.
func FilterFresh(records []models.ComicRecord) []models.ComicRecord {
	fresh := records[:0:0]
	for _, record := range records {
		chapter := strings.ToLower(record.Chapter)
		if strings.Contains(chapter, "completed") || strings.Contains(chapter, "tamat") {
			continue
		}
		fresh = append(fresh, record)
	}
	return fresh
}

// FilterTitleContains keeps records whose title contains the query,
// case-insensitively.
func FilterTitleContains(records []models.ComicRecord, query string) []models.ComicRecord {
	lowered := strings.ToLower(query)
	matched := records[:0:0]
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Title), lowered) {
			matched = append(matched, record)
		}
	}
	return matched
}

// Paginate slices records into the requested page. Page numbering is
// 1-based; out-of-range pages yield an empty comics list with correct
// totals.
func Paginate(records []models.ComicRecord, page, perPage int) models.ComicList {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	total := len(records)
	start := (page - 1) * perPage
	end := start + perPage

	comics := []models.ComicRecord{}
	if start < total {
		if end > total {
			comics = append(comics, records[start:total]...)
		} else {
			comics = append(comics, records[start:end]...)
		}
	}

	return models.ComicList{
		Comics: comics,
		Pagination: models.Pagination{
			CurrentPage: page,
			PerPage:     perPage,
			Total:       total,
			HasMore:     end < total,
		},
	}
}
