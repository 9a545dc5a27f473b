package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Groodev/komik-api/internal/aggregate"
	"github.com/Groodev/komik-api/internal/models"
	"github.com/Groodev/komik-api/internal/scrape"
)

var validTypes = map[string]bool{"manga": true, "manhwa": true, "manhua": true}

// genreKeywords widens genre lookups when the site search for the
// genre name itself comes back empty.
var genreKeywords = map[string][]string{
	"action":    {"fight", "battle", "war", "warrior", "sword", "martial"},
	"romance":   {"love", "romance", "wedding", "marriage", "dating"},
	"fantasy":   {"magic", "dragon", "wizard", "fantasy", "kingdom"},
	"isekai":    {"isekai", "reincarn", "another world", "summoned"},
	"comedy":    {"funny", "comedy", "laugh", "humor"},
	"drama":     {"drama", "tragedy", "family", "life"},
	"adventure": {"adventure", "journey", "explore", "quest"},
	"horror":    {"horror", "ghost", "monster", "demon"},
	"mystery":   {"mystery", "detective", "crime", "investigation"},
}

// Search looks a query up through three tiers: the site's own search
// page, title-filtered listing pages, and finally the directory.
func (h *Handler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return badRequest(c, "query parameter is required")
	}
	page := queryInt(c, "page", 1, 0)
	limit := queryInt(c, "limit", 20, 50)

	records := h.searchTier(c, []aggregate.Source{
		{URL: h.catalog.Search(query), Strategy: scrape.SearchResults(), Accumulate: true},
	}, query)

	if len(records) == 0 {
		records = h.searchTier(c, []aggregate.Source{
			{URL: h.catalog.Home(), Strategy: scrape.Library()},
			{URL: h.catalog.Pustaka(), Strategy: scrape.Library()},
			{URL: h.catalog.PustakaOrdered("modified"), Strategy: scrape.Library()},
		}, query)
	}
	if len(records) == 0 {
		records = h.searchTier(c, []aggregate.Source{
			{URL: h.catalog.Directory(), Strategy: scrape.Directory()},
		}, query)
	}

	aggregate.SortByRelevance(records)
	list := aggregate.Paginate(records, page, limit)
	return c.JSON(fiber.Map{
		"query":      query,
		"comics":     list.Comics,
		"pagination": list.Pagination,
	})
}

func (h *Handler) searchTier(c *fiber.Ctx, sources []aggregate.Source, query string) []models.ComicRecord {
	records := h.agg.Collect(c.Context(), sources, aggregate.Policy{
		Dedup:      aggregate.FirstWins,
		MaxRecords: 100,
	})
	records = aggregate.FilterTitleContains(records, query)
	for i := range records {
		records[i].Relevance = aggregate.Relevance(records[i].Title, query)
	}
	return records
}

// AdvancedSearch adds type and status filters on top of the directory
// listing, whose badges carry that metadata.
func (h *Handler) AdvancedSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return badRequest(c, "query parameter is required")
	}
	page := queryInt(c, "page", 1, 0)
	limit := queryInt(c, "limit", 20, 50)
	typeFilter := strings.ToLower(c.Query("type", "all"))
	statusFilter := strings.ToLower(c.Query("status", "all"))
	genreFilter := strings.ToLower(c.Query("genre", "all"))
	sortMode := c.Query("sort", "relevance")

	records := h.collectDirectoryMatches(c, h.catalog.Directory(), query)

	if typeFilter != "all" && len(records) < 50 {
		records = mergeByLink(records, h.collectDirectoryMatches(c, h.catalog.PustakaTyped(typeFilter), query))
	}
	if genreFilter != "all" && len(records) < 50 {
		records = mergeByLink(records, h.collectDirectoryMatches(c, h.catalog.Genre(genreFilter), query))
	}

	filtered := records[:0:0]
	for _, record := range records {
		if typeFilter != "all" && !strings.Contains(strings.ToLower(record.Type), typeFilter) {
			continue
		}
		if statusFilter != "all" && !strings.Contains(strings.ToLower(record.Status), statusFilter) {
			continue
		}
		filtered = append(filtered, record)
	}

	switch sortMode {
	case "title":
		aggregate.SortByTitle(filtered)
	default:
		aggregate.SortByRelevance(filtered)
	}

	list := aggregate.Paginate(filtered, page, limit)
	return c.JSON(fiber.Map{
		"query":      query,
		"filters":    fiber.Map{"type": typeFilter, "status": statusFilter, "genre": genreFilter, "sort": sortMode},
		"comics":     list.Comics,
		"pagination": list.Pagination,
	})
}

func (h *Handler) collectDirectoryMatches(c *fiber.Ctx, url, query string) []models.ComicRecord {
	body, err := h.client.Fetch(c.Context(), url)
	if err != nil {
		h.logger.Warn("directory fetch failed", "url", url, "error", err)
		return nil
	}
	doc, err := scrape.ParseDocument(body)
	if err != nil {
		return nil
	}

	var records []models.ComicRecord
	lowered := strings.ToLower(query)
	for _, record := range scrape.RecordsWithBadges(doc, scrape.Directory()) {
		if !strings.Contains(strings.ToLower(record.Title), lowered) {
			continue
		}
		record.Relevance = aggregate.Relevance(record.Title, query)
		records = append(records, record)
	}
	return records
}

func mergeByLink(existing, extra []models.ComicRecord) []models.ComicRecord {
	seen := make(map[string]struct{}, len(existing))
	for _, record := range existing {
		seen[record.Link] = struct{}{}
	}
	for _, record := range extra {
		if _, dup := seen[record.Link]; dup {
			continue
		}
		seen[record.Link] = struct{}{}
		existing = append(existing, record)
	}
	return existing
}

// Genre serves comics related to one genre through search, keyword
// widening, and a homepage fallback.
func (h *Handler) Genre(c *fiber.Ctx) error {
	genre := strings.ToLower(strings.TrimSpace(c.Params("genre")))
	if genre == "" {
		return badRequest(c, "genre is required")
	}
	page := queryInt(c, "page", 1, 0)
	limit := queryInt(c, "limit", 20, 50)

	records := h.genreSearch(c, genre, genre, 100, 50)

	if len(records) == 0 {
		keywords := genreKeywords[genre]
		if len(keywords) == 0 {
			keywords = []string{genre}
		}
		for _, keyword := range keywords {
			if len(records) >= 20 {
				break
			}
			records = mergeByLink(records, h.genreSearch(c, keyword, genre, 80, 60))
		}
	}

	if len(records) == 0 {
		homepage := h.agg.Collect(c.Context(), []aggregate.Source{
			{URL: h.catalog.Home(), Strategy: scrape.HomeLatest()},
		}, aggregate.Policy{MaxRecords: 20})
		for i := range homepage {
			if strings.Contains(strings.ToLower(homepage[i].Title), genre) {
				homepage[i].Relevance = 70
			} else {
				homepage[i].Relevance = 30
			}
		}
		records = homepage
	}

	aggregate.SortByRelevance(records)
	list := aggregate.Paginate(records, page, limit)
	return c.JSON(fiber.Map{
		"genre":      genre,
		"comics":     list.Comics,
		"pagination": list.Pagination,
	})
}

func (h *Handler) genreSearch(c *fiber.Ctx, keyword, genre string, matchScore, missScore int) []models.ComicRecord {
	records := h.agg.Collect(c.Context(), []aggregate.Source{
		{URL: h.catalog.Search(keyword), Strategy: scrape.SearchResults(), Accumulate: true},
	}, aggregate.Policy{MaxRecords: 100})

	for i := range records {
		if strings.Contains(strings.ToLower(records[i].Title), genre) {
			records[i].Relevance = matchScore
		} else {
			records[i].Relevance = missScore
		}
	}
	return records
}

// ByType lists comics of one publication type. Unknown types are a
// client error.
func (h *Handler) ByType(c *fiber.Ctx) error {
	comicType := strings.ToLower(c.Params("type"))
	if !validTypes[comicType] {
		return badRequest(c, `invalid type, use "manga", "manhwa", or "manhua"`)
	}

	typed := scrape.Library()
	typed.MaxRecords = 24
	typed.LinkMustContain = []string{"/" + comicType + "/"}

	records := h.agg.Collect(c.Context(), []aggregate.Source{
		{URL: h.catalog.PustakaTyped(comicType), Strategy: typed, FallbackUnfiltered: true},
		{URL: h.catalog.PustakaOrderedTyped("modified", comicType), Strategy: typed, FallbackUnfiltered: true},
		{URL: h.catalog.DirectoryTyped(comicType), Strategy: typed, FallbackUnfiltered: true},
	}, aggregate.Policy{Dedup: aggregate.FirstWins, EarlyStop: 15, MaxRecords: 24})

	if len(records) == 0 {
		fallback := scrape.HomeLatest()
		fallback.MaxRecords = 12
		records = h.agg.Collect(c.Context(), []aggregate.Source{
			{URL: h.catalog.Home(), Strategy: fallback},
		}, aggregate.Policy{MaxRecords: 12})
	}

	for i := range records {
		records[i].Type = comicType
	}
	return c.JSON(emptyIfNil(records))
}

// Recommendations samples the popular sources.
func (h *Handler) Recommendations(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", 10, 20)

	records := h.agg.Collect(c.Context(), []aggregate.Source{
		{URL: h.catalog.Hot(), Strategy: scrape.HotList()},
		{URL: h.catalog.PustakaOrdered("meta_value_num"), Strategy: scrape.Library()},
		{URL: h.catalog.Home(), Strategy: scrape.HomeLatest()},
	}, aggregate.Policy{Dedup: aggregate.FirstWins, EarlyStop: 30})

	aggregate.Shuffle(records, newRand())
	if len(records) > limit {
		records = records[:limit]
	}

	return c.JSON(fiber.Map{
		"based_on":        c.Query("based_on", "popular_comics"),
		"recommendations": records,
		"count":           len(records),
	})
}
