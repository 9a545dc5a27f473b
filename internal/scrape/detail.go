package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Groodev/komik-api/internal/komiku"
	"github.com/Groodev/komik-api/internal/models"
)

var (
	scriptTitlePattern = regexp.MustCompile(`const judul = "(.*?)"`)

	pageTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Baca (?:Manga|Manhwa|Manhua) (.*?) Bahasa Indonesia`),
		regexp.MustCompile(`Komik (.*?) Bahasa Indonesia`),
		regexp.MustCompile(`^(.*?) - Komiku$`),
		regexp.MustCompile(`^(.*?) \|`),
	}

	komikuTitleSuffix = regexp.MustCompile(`(?i) - Komiku$`)
)

// Detail extracts a comic's detail page. The title cascade goes from
// the page's own inline metadata down to prettifying the slug, so a
// detail response always carries some title.
func Detail(body []byte, slug string) (models.ComicDetail, error) {
	doc, err := ParseDocument(body)
	if err != nil {
		return models.ComicDetail{}, err
	}

	detail := models.ComicDetail{
		Slug:     slug,
		Title:    detailTitle(string(body), doc, slug),
		Synopsis: strings.TrimSpace(doc.Find("p.desc").Text()),
		Image:    detailImage(doc),
		Genres:   detailGenres(doc),
		Chapters: detailChapters(doc),
	}
	return detail, nil
}

func detailTitle(body string, doc *goquery.Document, slug string) string {
	if m := scriptTitlePattern.FindStringSubmatch(body); len(m) == 2 && m[1] != "" {
		return m[1]
	}

	pageTitle := doc.Find("title").Text()
	for _, pattern := range pageTitlePatterns {
		if m := pattern.FindStringSubmatch(pageTitle); len(m) == 2 {
			if title := strings.TrimSpace(m[1]); title != "" {
				return title
			}
		}
	}

	headingSelectors := []string{"h1.jdl", "h1", ".entry h1", ".title h1", ".entry-title", ".post-title"}
	for _, selector := range headingSelectors {
		if title := strings.TrimSpace(doc.Find(selector).First().Text()); title != "" {
			return title
		}
	}

	if title := doc.Find(`meta[property="og:title"]`).AttrOr("content", ""); title != "" {
		return strings.TrimSpace(komikuTitleSuffix.ReplaceAllString(title, ""))
	}
	if title := doc.Find(`meta[name="title"]`).AttrOr("content", ""); title != "" {
		return strings.TrimSpace(komikuTitleSuffix.ReplaceAllString(title, ""))
	}

	if title := strings.TrimSpace(doc.Find(".breadcrumb li:last-child").Text()); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find(".nav-links .current").Text()); title != "" {
		return title
	}

	return komiku.PrettifySlug(slug)
}

func detailImage(doc *goquery.Document) string {
	if image := doc.Find(`meta[property="og:image"]`).AttrOr("content", ""); image != "" {
		return komiku.AbsoluteURL(image)
	}
	return ""
}

func detailGenres(doc *goquery.Document) []string {
	var genres []string
	doc.Find("ul.genre li a, .genre a").Each(func(_ int, sel *goquery.Selection) {
		if genre := strings.TrimSpace(sel.Text()); genre != "" {
			genres = append(genres, genre)
		}
	})
	return genres
}

func detailChapters(doc *goquery.Document) []models.ChapterRef {
	chapters := make([]models.ChapterRef, 0)
	doc.Find("#Daftar_Chapter tbody tr").Each(func(_ int, row *goquery.Selection) {
		anchor := row.Find("a").First()
		title := strings.TrimSpace(anchor.Text())
		link := strings.TrimSpace(anchor.AttrOr("href", ""))
		if title == "" || link == "" {
			return
		}
		chapters = append(chapters, models.ChapterRef{
			Title: title,
			Link:  komiku.NormalizeChapterPath(link),
			Date:  strings.TrimSpace(row.Find(".tanggalseries, td:last-child").First().Text()),
		})
	})
	return chapters
}

// ChapterPages extracts the reader image list of a chapter page.
func ChapterPages(body []byte) (models.ChapterPages, error) {
	doc, err := ParseDocument(body)
	if err != nil {
		return models.ChapterPages{}, err
	}

	title := strings.TrimSpace(doc.Find("title").Text())
	title = strings.TrimSpace(komikuTitleSuffix.ReplaceAllString(title, ""))

	images := make([]string, 0)
	doc.Find("#Baca_Komik img").Each(func(_ int, img *goquery.Selection) {
		if src := strings.TrimSpace(img.AttrOr("src", "")); src != "" {
			images = append(images, src)
		}
	})

	return models.ChapterPages{Title: title, Images: images}, nil
}
