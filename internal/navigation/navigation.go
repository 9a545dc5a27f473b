// Package navigation resolves a chapter page's previous and next
// chapter links. Reader pages expose navigation in wildly inconsistent
// markup, so resolution walks a cascade of signals from the most
// explicit (rel attributes) down to numeric slug comparison. A next
// chapter is never invented; only the previous chapter may be derived
// from the slug itself.
package navigation

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Groodev/komik-api/internal/komiku"
	"github.com/Groodev/komik-api/internal/models"
)

// candidateSelectors covers the navigation markup variants seen on
// upstream chapter pages.
var candidateSelectors = []string{
	".navig a", ".pager a", ".navigation a", ".chapter-nav a", ".nav-chapter a",
	".chap-nav a", ".chapter-navigation a", ".btn-nav", ".nav-btn", ".nextprev a",
	".next-prev a", ".chapter-pager a", `a[class*="nav"]`, `a[class*="chapter"]`,
	`a[href*="chapter"]`, "a[rel]",
	".nxpr a", ".topmenu a", ".bottommenu a", "a.l",
}

var (
	dottedChapterPattern     = regexp.MustCompile(`(?i)-chapter-(\d+(?:\.\d+)?)/?$`)
	hyphenatedChapterPattern = regexp.MustCompile(`(?i)-chapter-(\d+)-(\d+)/?$`)
	wholeChapterPattern      = regexp.MustCompile(`(?i)-chapter-\d+/?$`)
	numericTextPattern       = regexp.MustCompile(`^\d+(\.\d+)?$`)
	segmentChapterPattern    = regexp.MustCompile(`(?i)^(.+)-chapter-(\d+(?:\.\d+)?)$`)
	segmentNumberPattern     = regexp.MustCompile(`(?i)chapter-(\d+(?:\.\d+)?)$`)
	titleSuffixPattern       = regexp.MustCompile(`(?i) - Komiku$`)

	prevClassPattern = regexp.MustCompile(`prev|previous|sebelum`)
	nextClassPattern = regexp.MustCompile(`next|lanjut|selanjutnya`)
	prevArrowPattern = regexp.MustCompile(`[←‹«<]`)
	nextArrowPattern = regexp.MustCompile(`[→›»>]`)
)

// CandidateLink is one anchor considered for chapter navigation. Path
// is normalized to a leading-slash, dotted-chapter form.
type CandidateLink struct {
	Path  string
	Text  string
	Rel   string
	Aria  string
	Class string
	Title string
}

// CollectCandidates gathers every plausible navigation anchor from the
// page. Links into the chapter index (#Chapter fragments) are ignored.
func CollectCandidates(doc *goquery.Document) []CandidateLink {
	var candidates []CandidateLink
	for _, selector := range candidateSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href := strings.TrimSpace(sel.AttrOr("href", ""))
			if href == "" || strings.Contains(strings.ToLower(href), "#chapter") {
				return
			}

			path := hrefPath(href)
			text := strings.TrimSpace(sel.Text())
			rel := strings.ToLower(sel.AttrOr("rel", ""))
			aria := strings.ToLower(sel.AttrOr("aria-label", ""))
			class := strings.ToLower(sel.AttrOr("class", ""))
			title := strings.ToLower(sel.AttrOr("title", ""))

			if !qualifies(path, text, rel, aria, class, title) {
				return
			}

			candidates = append(candidates, CandidateLink{
				Path:  komiku.NormalizeChapterPath(path),
				Text:  text,
				Rel:   rel,
				Aria:  aria,
				Class: class,
				Title: title,
			})
		})
	}
	return candidates
}

func hrefPath(href string) string {
	path := href
	if strings.HasPrefix(href, "http") {
		if parsed, err := url.Parse(href); err == nil {
			path = parsed.Path
		}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func qualifies(path, text, rel, aria, class, title string) bool {
	looksLikeChapterLink := strings.Contains(title, "chapter") ||
		hasClass(class, "l") ||
		wholeChapterPattern.MatchString(path)

	return looksLikeChapterLink ||
		dottedChapterPattern.MatchString(path) ||
		hyphenatedChapterPattern.MatchString(path) ||
		strings.Contains(rel, "prev") || strings.Contains(rel, "next") ||
		aria != "" ||
		prevClassPattern.MatchString(class) || nextClassPattern.MatchString(class) ||
		numericTextPattern.MatchString(text)
}

func hasClass(classAttr, name string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == name {
			return true
		}
	}
	return false
}

// Resolve determines the previous and next chapter links for the given
// chapter page. segment is the chapter's own URL slug.
func Resolve(doc *goquery.Document, segment string) models.NavigationResult {
	result := models.NavigationResult{
		CurrentChapter: currentChapterTitle(doc),
	}

	candidates := CollectCandidates(doc)
	if len(candidates) > 0 {
		resolveFromCandidates(&result, candidates, segment)
	}

	if result.PrevChapter == nil {
		result.PrevChapter = synthesizePrev(segment)
	}
	return result
}

func currentChapterTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").Text())
	return strings.TrimSpace(titleSuffixPattern.ReplaceAllString(title, ""))
}

const (
	prevLabel = "Previous Chapter"
	nextLabel = "Next Chapter"
)

func chapterLink(label, path string) *models.ChapterLink {
	return &models.ChapterLink{Label: label, Link: path}
}

func resolveFromCandidates(result *models.NavigationResult, candidates []CandidateLink, segment string) {
	// Stage 1: explicit rel attributes.
	for i := range candidates {
		c := &candidates[i]
		if result.PrevChapter == nil && strings.Contains(c.Rel, "prev") {
			result.PrevChapter = chapterLink(prevLabel, c.Path)
		}
		if result.NextChapter == nil && strings.Contains(c.Rel, "next") {
			result.NextChapter = chapterLink(nextLabel, c.Path)
		}
	}

	// Stage 2: aria-label and class keywords.
	for i := range candidates {
		c := &candidates[i]
		if result.PrevChapter == nil &&
			(strings.Contains(c.Aria, "prev") || strings.Contains(c.Aria, "sebelum") ||
				strings.Contains(c.Class, "prev") || strings.Contains(c.Class, "previous") || strings.Contains(c.Class, "sebelum")) {
			result.PrevChapter = chapterLink(prevLabel, c.Path)
		}
		if result.NextChapter == nil &&
			(strings.Contains(c.Aria, "next") || strings.Contains(c.Aria, "selanjut") ||
				strings.Contains(c.Class, "next") || strings.Contains(c.Class, "lanjut") || strings.Contains(c.Class, "selanjutnya")) {
			result.NextChapter = chapterLink(nextLabel, c.Path)
		}
	}

	// Stage 3: anchor text words and arrow glyphs.
	for i := range candidates {
		c := &candidates[i]
		text := strings.ToLower(c.Text)
		if result.PrevChapter == nil &&
			(strings.Contains(text, "prev") || strings.Contains(text, "previous") || strings.Contains(text, "sebelum") || prevArrowPattern.MatchString(text)) {
			result.PrevChapter = chapterLink(prevLabel, c.Path)
		}
		if result.NextChapter == nil &&
			(strings.Contains(text, "next") || strings.Contains(text, "lanjut") || strings.Contains(text, "selanjutnya") || nextArrowPattern.MatchString(text)) {
			result.NextChapter = chapterLink(nextLabel, c.Path)
		}
	}

	// Stage 4: numeric proximity against the current chapter number.
	if result.PrevChapter != nil && result.NextChapter != nil {
		return
	}
	currentNum, ok := segmentNumber(segment)
	if !ok {
		return
	}

	var prev, next *CandidateLink
	var prevNum, nextNum float64
	for i := range candidates {
		c := &candidates[i]
		num, ok := candidateNumber(c.Path)
		if !ok {
			continue
		}
		if num < currentNum && (prev == nil || currentNum-num < currentNum-prevNum) {
			prev, prevNum = c, num
		}
		if num > currentNum && (next == nil || num-currentNum < nextNum-currentNum) {
			next, nextNum = c, num
		}
	}
	if prev != nil && result.PrevChapter == nil {
		result.PrevChapter = chapterLink(prevLabel, prev.Path)
	}
	if next != nil && result.NextChapter == nil {
		result.NextChapter = chapterLink(nextLabel, next.Path)
	}
}

func segmentNumber(segment string) (float64, bool) {
	m := segmentNumberPattern.FindStringSubmatch(segment)
	if len(m) != 2 {
		return 0, false
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

func candidateNumber(path string) (float64, bool) {
	if m := dottedChapterPattern.FindStringSubmatch(path); len(m) == 2 {
		num, err := strconv.ParseFloat(m[1], 64)
		return num, err == nil
	}
	if m := hyphenatedChapterPattern.FindStringSubmatch(path); len(m) == 3 {
		num, err := strconv.ParseFloat(m[1]+"."+m[2], 64)
		return num, err == nil
	}
	return 0, false
}

// synthesizePrev derives the previous chapter link from the slug when
// the page itself offered nothing. Fractional chapters step down to
// their whole chapter. A next link is never synthesized because the
// latest chapter has none and a fabricated link would 404.
func synthesizePrev(segment string) *models.ChapterLink {
	m := segmentChapterPattern.FindStringSubmatch(segment)
	if len(m) != 3 {
		return nil
	}
	num, err := strconv.ParseFloat(m[2], 64)
	if err != nil || num <= 1 {
		return nil
	}

	var prevNum float64
	if num == math.Trunc(num) {
		prevNum = num - 1
	} else {
		prevNum = math.Floor(num)
	}
	if prevNum < 1 {
		return nil
	}

	link := "/" + m[1] + "-chapter-" + strconv.FormatFloat(prevNum, 'f', -1, 64) + "/"
	return chapterLink(prevLabel, link)
}
