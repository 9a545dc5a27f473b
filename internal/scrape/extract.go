package scrape

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Groodev/komik-api/internal/komiku"
	"github.com/Groodev/komik-api/internal/models"
)

const maxTitleLen = 100

// imageAttrs is the fallback chain walked on every candidate <img>.
var imageAttrs = []string{"src", "data-src", "data-lazy-src", "data-original", "srcset"}

// ParseDocument builds a queryable document from raw page bytes.
func ParseDocument(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// Records extracts comic records using the first container group that
// yields at least one record. Results keep document order.
func Records(doc *goquery.Document, strategy Strategy) []models.ComicRecord {
	for _, container := range strategy.Containers {
		records := collect(doc, container, strategy, nil)
		if len(records) > 0 {
			return records
		}
	}
	return nil
}

// RecordsWithBadges extracts like Records and additionally reads the
// directory listing's type and status badges.
func RecordsWithBadges(doc *goquery.Document, strategy Strategy) []models.ComicRecord {
	for _, container := range strategy.Containers {
		var records []models.ComicRecord
		doc.Find(container).Each(func(_ int, sel *goquery.Selection) {
			record, ok := extractRecord(sel, strategy)
			if !ok {
				return
			}
			record.Type, record.Status = extractBadges(sel)
			records = append(records, record)
		})
		if len(records) > 0 {
			return records
		}
	}
	return nil
}

func extractBadges(sel *goquery.Selection) (comicType, status string) {
	var parts []string
	sel.Find(".ls4s, .type, .status").Each(func(_ int, badge *goquery.Selection) {
		if text := strings.TrimSpace(badge.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	full := strings.ToLower(strings.Join(parts, " "))

	switch {
	case strings.Contains(full, "manga"):
		comicType = "Manga"
	case strings.Contains(full, "manhwa"):
		comicType = "Manhwa"
	case strings.Contains(full, "manhua"):
		comicType = "Manhua"
	default:
		comicType = "Unknown"
	}

	switch {
	case strings.Contains(full, "status: end"), strings.Contains(full, "completed"), strings.Contains(full, "tamat"):
		status = "Completed"
	case strings.Contains(full, "ongoing"):
		status = "Ongoing"
	case strings.Contains(full, "hiatus"):
		status = "Hiatus"
	default:
		status = "Unknown"
	}
	return comicType, status
}

// RecordsAll extracts over every container group, deduplicating by
// link. cap bounds the total; zero means the strategy's MaxRecords or
// unbounded.
func RecordsAll(doc *goquery.Document, strategy Strategy, cap int) []models.ComicRecord {
	if cap == 0 {
		cap = strategy.MaxRecords
	}

	seen := make(map[string]struct{})
	var records []models.ComicRecord
	for _, container := range strategy.Containers {
		for _, record := range collect(doc, container, strategy, seen) {
			records = append(records, record)
			if cap > 0 && len(records) >= cap {
				return records
			}
		}
	}
	return records
}

func collect(doc *goquery.Document, container string, strategy Strategy, seen map[string]struct{}) []models.ComicRecord {
	var records []models.ComicRecord
	doc.Find(container).Each(func(_ int, sel *goquery.Selection) {
		if strategy.MaxRecords > 0 && len(records) >= strategy.MaxRecords {
			return
		}

		record, ok := extractRecord(sel, strategy)
		if !ok {
			return
		}
		if seen != nil {
			if _, dup := seen[record.Link]; dup {
				return
			}
			seen[record.Link] = struct{}{}
		}
		records = append(records, record)
	})
	return records
}

func extractRecord(sel *goquery.Selection, strategy Strategy) (models.ComicRecord, bool) {
	title := firstText(sel, strategy.TitleSelectors)
	if title == "" {
		title = strings.TrimSpace(sel.Find("a").First().AttrOr("title", ""))
	}
	if title == "" {
		title = strings.TrimSpace(sel.Find("img").First().AttrOr("alt", ""))
	}

	link := firstAttr(sel, linkSelectors(strategy), "href")
	if link == "" {
		link = strings.TrimSpace(sel.Find("a").First().AttrOr("href", ""))
	}

	minLen := strategy.MinTitleLen
	if minLen == 0 {
		minLen = 1
	}
	if len([]rune(title)) < minLen || link == "" {
		return models.ComicRecord{}, false
	}
	if !linkAllowed(link, strategy.LinkMustContain) {
		return models.ComicRecord{}, false
	}

	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen])
	}

	image := firstImage(sel, strategy.ImageSelectors)
	if image == "" {
		image = komiku.PlaceholderImage
	} else {
		image = komiku.AbsoluteURL(image)
	}

	chapter := firstText(sel, strategy.ChapterSelectors)
	if chapter == "" {
		chapter = strategy.DefaultChapter
	}

	return models.ComicRecord{
		Title:   title,
		Link:    komiku.ToInternalRoute(link),
		Image:   image,
		Chapter: chapter,
	}, true
}

func linkSelectors(strategy Strategy) []string {
	if len(strategy.LinkSelectors) > 0 {
		return strategy.LinkSelectors
	}
	return strategy.TitleSelectors
}

func linkAllowed(link string, fragments []string) bool {
	if len(fragments) == 0 {
		return true
	}
	for _, fragment := range fragments {
		if strings.Contains(link, fragment) {
			return true
		}
	}
	return false
}

func firstText(sel *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(sel.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func firstAttr(sel *goquery.Selection, selectors []string, attr string) string {
	for _, selector := range selectors {
		if value := strings.TrimSpace(sel.Find(selector).First().AttrOr(attr, "")); value != "" {
			return value
		}
	}
	return ""
}

func firstImage(sel *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		img := sel.Find(selector).First()
		if img.Length() == 0 {
			continue
		}
		for _, attr := range imageAttrs {
			value := strings.TrimSpace(img.AttrOr(attr, ""))
			if value == "" {
				continue
			}
			if attr == "srcset" {
				value = firstSrcsetURL(value)
			}
			if value != "" {
				return value
			}
		}
	}
	return ""
}

// firstSrcsetURL keeps only the URL of the first srcset entry,
// dropping the density descriptor.
func firstSrcsetURL(srcset string) string {
	entry := srcset
	if idx := strings.Index(entry, ","); idx >= 0 {
		entry = entry[:idx]
	}
	fields := strings.Fields(entry)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
