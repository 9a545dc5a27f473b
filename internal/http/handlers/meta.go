package handlers

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Groodev/komik-api/internal/scrape"
)

type genreEntry struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

var genreCatalog = []genreEntry{
	{"action", "Action"},
	{"adventure", "Adventure"},
	{"comedy", "Comedy"},
	{"drama", "Drama"},
	{"ecchi", "Ecchi"},
	{"fantasy", "Fantasy"},
	{"harem", "Harem"},
	{"historical", "Historical"},
	{"horror", "Horror"},
	{"isekai", "Isekai"},
	{"martial-arts", "Martial Arts"},
	{"mecha", "Mecha"},
	{"mystery", "Mystery"},
	{"psychological", "Psychological"},
	{"romance", "Romance"},
	{"school-life", "School Life"},
	{"sci-fi", "Sci-fi"},
	{"seinen", "Seinen"},
	{"shoujo", "Shoujo"},
	{"shounen", "Shounen"},
	{"slice-of-life", "Slice of Life"},
	{"sports", "Sports"},
	{"supernatural", "Supernatural"},
	{"thriller", "Thriller"},
}

// Genres serves the supported genre slugs with display names.
func (h *Handler) Genres(c *fiber.Ctx) error {
	return c.JSON(genreCatalog)
}

var (
	totalComicsPattern   = regexp.MustCompile(`(?i)(\d+[\.,]?\d*)\s*(?:judul|komik|title)`)
	totalChaptersPattern = regexp.MustCompile(`(?i)(\d+[\.,]?\d*)\s*(?:chapter|bab)`)
	separatorReplacer    = strings.NewReplacer(".", "", ",", "")
)

// Stats reports upstream catalog counters scraped from the homepage
// body text. Counters stay zero when the page stops advertising them.
func (h *Handler) Stats(c *fiber.Ctx) error {
	body, err := h.client.FetchWithRetry(c.Context(), h.catalog.Home(), h.retries+1, time.Second)
	if err != nil {
		h.logger.Warn("stats fetch failed", "error", err)
		return upstreamError(c, "error fetching stats")
	}

	doc, err := parseStatsDocument(body)
	if err != nil {
		return upstreamError(c, "error parsing stats page")
	}

	stats := fiber.Map{
		"total_comics":        0,
		"total_chapters":      0,
		"currently_displayed": doc.displayed,
		"last_updated":        time.Now().UTC().Format(time.RFC3339),
	}
	if m := totalComicsPattern.FindStringSubmatch(doc.bodyText); len(m) == 2 {
		if n, err := strconv.Atoi(separatorReplacer.Replace(m[1])); err == nil {
			stats["total_comics"] = n
		}
	}
	if m := totalChaptersPattern.FindStringSubmatch(doc.bodyText); len(m) == 2 {
		if n, err := strconv.Atoi(separatorReplacer.Replace(m[1])); err == nil {
			stats["total_chapters"] = n
		}
	}
	return c.JSON(stats)
}

// Health reports process liveness. The service holds no database, so
// the check covers only the in-memory stores.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":        "ok",
		"cache_entries": h.cache.Len(),
		"time":          time.Now().UTC().Format(time.RFC3339),
	})
}

type statsPage struct {
	bodyText  string
	displayed int
}

func parseStatsDocument(body []byte) (statsPage, error) {
	doc, err := scrape.ParseDocument(body)
	if err != nil {
		return statsPage{}, err
	}
	return statsPage{
		bodyText:  doc.Find("body").Text(),
		displayed: doc.Find(".ls4").Length(),
	}, nil
}

// CacheClear drops either one cached response or the whole store.
func (h *Handler) CacheClear(c *fiber.Ctx) error {
	if key := c.Query("key"); key != "" {
		h.cache.Delete(key)
		return c.JSON(fiber.Map{"message": "cache cleared for key: " + key})
	}
	cleared := h.cache.Clear()
	return c.JSON(fiber.Map{"message": "all cache cleared", "cleared": cleared})
}
