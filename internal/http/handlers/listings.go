package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Groodev/komik-api/internal/aggregate"
	"github.com/Groodev/komik-api/internal/models"
	"github.com/Groodev/komik-api/internal/scrape"
)

// Latest serves the recently-updated listing. The homepage grid leads;
// ranking and library tiers only top the result up when it runs short.
func (h *Handler) Latest(c *fiber.Ctx) error {
	page := queryInt(c, "page", 1, 0)
	limit := queryInt(c, "limit", 20, 50)

	records := h.agg.Collect(c.Context(), []aggregate.Source{
		{URL: h.catalog.Home(), Strategy: scrape.HomeLatest(), Priority: 1, Retries: h.retries},
		{URL: h.catalog.Home(), Strategy: scrape.HomeRanking(), Priority: 2},
		{URL: h.catalog.Pustaka(), Strategy: scrape.Library(), Priority: 3},
	}, aggregate.Policy{Dedup: aggregate.FirstWins, EarlyStop: limit})

	return c.JSON(aggregate.Paginate(records, page, limit))
}

// Popular merges the by-views library, the hot page, and the homepage
// ranking. Hotter sources carry lower priority values and win dedup
// ties and the final ordering.
func (h *Handler) Popular(c *fiber.Ctx) error {
	page := queryInt(c, "page", 1, 0)
	limit := queryInt(c, "limit", 20, 50)

	records := h.agg.Collect(c.Context(), []aggregate.Source{
		{URL: h.catalog.Hot(), Strategy: scrape.HotList(), Priority: 1},
		{URL: h.catalog.PustakaOrdered("meta_value_num"), Strategy: scrape.Library(), Priority: 2},
		{URL: h.catalog.Home(), Strategy: scrape.HomeRanking(), Priority: 2},
		{URL: h.catalog.PustakaOrderedTyped("meta_value_num", "manga"), Strategy: scrape.Library(), Priority: 3},
		{URL: h.catalog.PustakaOrderedTyped("meta_value_num", "manhwa"), Strategy: scrape.Library(), Priority: 3},
		{URL: h.catalog.PustakaOrderedTyped("meta_value_num", "manhua"), Strategy: scrape.Library(), Priority: 3},
		{URL: h.catalog.Home(), Strategy: scrape.HomeLatest(), Priority: 4},
	}, aggregate.Policy{Dedup: aggregate.PriorityWins, EarlyStop: 80, MaxRecords: 100})

	aggregate.SortByPriorityThenTitle(records)
	return c.JSON(aggregate.Paginate(records, page, limit))
}

// Realtime fetches its fixed source set concurrently and resolves
// duplicates toward the fresher source.
func (h *Handler) Realtime(c *fiber.Ctx) error {
	count := queryInt(c, "count", 48, 100)
	fresh := c.Query("fresh") == "true"
	randomize := c.Query("randomize") == "true"
	categories := c.Query("categories", "all")

	sources := []aggregate.Source{
		{URL: h.catalog.Home(), Strategy: scrape.Library(), Priority: 1},
		{URL: h.catalog.PustakaOrdered("modified"), Strategy: scrape.Library(), Priority: 2},
		{URL: h.catalog.Pustaka(), Strategy: scrape.Library(), Priority: 3},
		{URL: h.catalog.PustakaOrdered("meta_value_num"), Strategy: scrape.Library(), Priority: 4},
		{URL: h.catalog.Hot(), Strategy: scrape.HotList(), Priority: 5},
	}
	if categories != "all" && categories != "" {
		for _, category := range strings.Split(categories, ",") {
			sources = append(sources, aggregate.Source{
				URL:      h.catalog.PustakaTyped(strings.TrimSpace(category)),
				Strategy: scrape.Library(),
				Priority: 2,
			})
		}
	}

	records := h.agg.Collect(c.Context(), sources, aggregate.Policy{
		Concurrent: true,
		Dedup:      aggregate.PriorityWins,
	})

	if fresh {
		records = aggregate.FilterFresh(records)
	}
	if randomize {
		aggregate.Shuffle(records, newRand())
	} else {
		aggregate.SortByPriorityThenTitle(records)
	}

	total := len(records)
	if len(records) > count {
		records = records[:count]
	}

	return c.JSON(fiber.Map{
		"comics": records,
		"metadata": fiber.Map{
			"total_fetched":   total,
			"returned":        len(records),
			"sources_checked": len(sources),
			"fresh_only":      fresh,
			"randomized":      randomize,
		},
	})
}

// Trending weighs each source with a fixed score and returns the
// highest scorers first.
func (h *Handler) Trending(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", 20, 50)

	type scoredSource struct {
		source aggregate.Source
		score  int
	}
	sources := []scoredSource{
		{aggregate.Source{URL: h.catalog.Hot(), Strategy: scrape.HotList(), Priority: 1}, 10},
		{aggregate.Source{URL: h.catalog.PustakaOrdered("meta_value_num"), Strategy: scrape.Library(), Priority: 2}, 8},
		{aggregate.Source{URL: h.catalog.Home(), Strategy: scrape.HomeLatest(), Priority: 3}, 5},
	}

	var records []models.ComicRecord
	seen := make(map[string]struct{})
	for _, s := range sources {
		if len(records) >= 100 {
			break
		}
		for _, record := range h.agg.Collect(c.Context(), []aggregate.Source{s.source}, aggregate.Policy{}) {
			if _, dup := seen[record.Link]; dup {
				continue
			}
			seen[record.Link] = struct{}{}
			record.TrendingScore = s.score
			records = append(records, record)
			if len(records) >= 100 {
				break
			}
		}
	}

	aggregate.SortByTrendingScore(records)
	if len(records) > limit {
		records = records[:limit]
	}

	return c.JSON(fiber.Map{
		"trending": records,
		"count":    len(records),
	})
}

// Scroll serves a deterministic pseudo-random window for infinite
// scrolling. The same seed and offset always produce the same batch.
func (h *Handler) Scroll(c *fiber.Ctx) error {
	offset := queryOffset(c, "offset")
	batchSize := queryInt(c, "batch_size", 20, 50)

	seed, seedGiven := int64(0), false
	if raw := c.Query("seed"); raw != "" {
		if parsed, err := parseInt64(raw); err == nil {
			seed, seedGiven = parsed, true
		}
	}
	if !seedGiven {
		seed = time.Now().UnixMilli()
	}

	records := h.agg.Collect(c.Context(), []aggregate.Source{
		{URL: h.catalog.Home(), Strategy: scrape.Library()},
		{URL: h.catalog.Pustaka(), Strategy: scrape.Library()},
		{URL: h.catalog.PustakaOrdered("modified"), Strategy: scrape.Library()},
		{URL: h.catalog.PustakaOrdered("meta_value_num"), Strategy: scrape.Library()},
		{URL: h.catalog.PustakaPage(offset/20 + 1), Strategy: scrape.Library()},
		{URL: h.catalog.PustakaPage(offset/20 + 2), Strategy: scrape.Library()},
		{URL: h.catalog.Hot(), Strategy: scrape.HotList()},
	}, aggregate.Policy{Dedup: aggregate.FirstWins})

	aggregate.SeededOrder(records, seed, int64(offset))

	batch := records
	if len(batch) > batchSize {
		batch = batch[:batchSize]
	}

	return c.JSON(fiber.Map{
		"comics": batch,
		"scroll_info": fiber.Map{
			"current_offset": offset,
			"batch_size":     batchSize,
			"returned_count": len(batch),
			"next_offset":    offset + len(batch),
			"has_more":       len(batch) == batchSize,
			"seed":           seed,
		},
	})
}

// Infinite pages through a type-keyed source list.
func (h *Handler) Infinite(c *fiber.Ctx) error {
	page := queryInt(c, "page", 1, 0)
	limit := queryInt(c, "limit", 24, 50)
	listType := c.Query("type", "latest")

	sourceSets := map[string][]string{
		"latest":  {h.catalog.Home(), h.catalog.PustakaOrdered("modified"), h.catalog.Pustaka()},
		"popular": {h.catalog.PustakaOrdered("meta_value_num"), h.catalog.Hot(), h.catalog.Home()},
		"manga":   {h.catalog.PustakaTyped("manga"), h.catalog.PustakaOrderedTyped("modified", "manga")},
		"manhwa":  {h.catalog.PustakaTyped("manhwa"), h.catalog.PustakaOrderedTyped("modified", "manhwa")},
		"manhua":  {h.catalog.PustakaTyped("manhua"), h.catalog.PustakaOrderedTyped("modified", "manhua")},
	}
	urls, ok := sourceSets[listType]
	if !ok {
		listType = "latest"
		urls = sourceSets["latest"]
	}

	sources := make([]aggregate.Source, 0, len(urls))
	for _, url := range urls {
		sources = append(sources, aggregate.Source{URL: url, Strategy: scrape.Library()})
	}

	records := h.agg.Collect(c.Context(), sources, aggregate.Policy{
		Dedup:      aggregate.FirstWins,
		EarlyStop:  150,
		MaxRecords: 200,
	})
	for i := range records {
		records[i].Type = listType
	}

	list := aggregate.Paginate(records, page, limit)
	return c.JSON(fiber.Map{
		"type":            listType,
		"comics":          list.Comics,
		"pagination":      list.Pagination,
		"infinite_scroll": true,
	})
}

// Unlimited walks the deep catalog pages with the widest strategy and
// every configured extra strategy.
func (h *Handler) Unlimited(c *fiber.Ctx) error {
	aggressive := c.Query("aggressive") == "true"
	maxPages := queryInt(c, "max_pages", 3, 6)

	urls := []string{
		h.catalog.Home(),
		h.catalog.Directory(),
		h.catalog.Hot(),
		h.catalog.PustakaOrdered("modified"),
		h.catalog.PustakaOrdered("meta_value_num"),
	}
	if aggressive {
		for _, genre := range []string{"action", "adventure", "comedy", "drama", "fantasy", "romance", "shounen"} {
			urls = append(urls, h.catalog.Genre(genre))
		}
		for _, t := range []string{"manga", "manhwa", "manhua"} {
			urls = append(urls, h.catalog.TypePage(t))
		}
		for page := 2; page <= maxPages; page++ {
			urls = append(urls, h.catalog.HomePage(page), h.catalog.Directory()+"page/"+itoa(page)+"/")
		}
	}

	sources := make([]aggregate.Source, 0, len(urls))
	for _, url := range urls {
		priority := 1
		if url == h.catalog.Home() {
			priority = 0
		}
		sources = append(sources, aggregate.Source{
			URL:        url,
			Strategy:   scrape.Broad(),
			Priority:   priority,
			Accumulate: true,
			Retries:    h.retries,
		})
	}
	for _, strategy := range h.extraStrategies {
		sources = append(sources, aggregate.Source{
			URL:        h.catalog.Home(),
			Strategy:   strategy,
			Priority:   1,
			Accumulate: true,
		})
	}

	records := h.agg.Collect(c.Context(), sources, aggregate.Policy{
		Dedup:     aggregate.FirstWins,
		EarlyStop: 100,
	})
	aggregate.SortByPriorityThenTitle(records)

	return c.JSON(fiber.Map{
		"comics": records,
		"metadata": fiber.Map{
			"total_sources":   len(sources),
			"total_comics":    len(records),
			"aggressive_mode": aggressive,
			"max_pages":       maxPages,
		},
	})
}

// Random shuffles the homepage grid and returns a small sample.
func (h *Handler) Random(c *fiber.Ctx) error {
	count := queryInt(c, "count", 10, 20)

	records := h.agg.Collect(c.Context(), []aggregate.Source{
		{URL: h.catalog.Home(), Strategy: scrape.HomeLatest(), Retries: h.retries},
	}, aggregate.Policy{})

	aggregate.Shuffle(records, newRand())
	if len(records) > count {
		records = records[:count]
	}
	return c.JSON(emptyIfNil(records))
}

// Homepage returns the ranking and latest sections in one pass over
// the homepage.
func (h *Handler) Homepage(c *fiber.Ctx) error {
	body, err := h.client.FetchWithRetry(c.Context(), h.catalog.Home(), h.retries+1, time.Second)
	if err != nil {
		h.logger.Warn("homepage fetch failed", "error", err)
		return upstreamError(c, "error fetching homepage data")
	}
	doc, err := scrape.ParseDocument(body)
	if err != nil {
		return upstreamError(c, "error parsing homepage data")
	}

	ranking := scrape.Records(doc, scrape.HomeRanking())
	latest := scrape.Records(doc, scrape.HomeLatest())

	return c.JSON(fiber.Map{
		"ranking": emptyIfNil(ranking),
		"latest":  emptyIfNil(latest),
	})
}

// Browse serves the filtered library listing.
func (h *Handler) Browse(c *fiber.Ctx) error {
	page := queryInt(c, "page", 1, 0)
	limit := queryInt(c, "limit", 24, 50)
	comicType := c.Query("type", "all")
	order := c.Query("order", "latest")
	genre := c.Query("genre")

	var url string
	switch {
	case genre != "":
		url = h.catalog.Genre(genre)
	case comicType != "all" && order == "popular":
		url = h.catalog.PustakaOrderedTyped("meta_value_num", comicType)
	case comicType != "all":
		url = h.catalog.PustakaOrderedTyped("modified", comicType)
	case order == "popular":
		url = h.catalog.PustakaOrdered("meta_value_num")
	default:
		url = h.catalog.PustakaOrdered("modified")
	}

	records := h.agg.Collect(c.Context(), []aggregate.Source{
		{URL: url, Strategy: scrape.Library(), Retries: h.retries},
	}, aggregate.Policy{Dedup: aggregate.FirstWins})
	if len(records) == 0 {
		records = h.agg.Collect(c.Context(), []aggregate.Source{
			{URL: h.catalog.Home(), Strategy: scrape.HomeLatest()},
		}, aggregate.Policy{MaxRecords: 50})
	}

	if comicType != "all" {
		for i := range records {
			records[i].Type = comicType
		}
	}

	list := aggregate.Paginate(records, page, limit)
	return c.JSON(fiber.Map{
		"filters":    fiber.Map{"type": comicType, "order": order, "genre": genre},
		"comics":     list.Comics,
		"pagination": list.Pagination,
	})
}

func emptyIfNil(records []models.ComicRecord) []models.ComicRecord {
	if records == nil {
		return []models.ComicRecord{}
	}
	return records
}
