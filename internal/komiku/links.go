// Package komiku knows the upstream site's URL shapes and turns the
// links it publishes into stable internal API routes.
package komiku

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

const (
	// BaseURL is the upstream catalog site all relative links resolve against.
	BaseURL = "https://komiku.org"

	// PlaceholderImage substitutes for records whose cover could not be extracted.
	PlaceholderImage = "https://komiku.org/asset/img/no-image.png"

	comicRoutePrefix = "/v1/comics/"
)

var (
	baseURL, _ = url.Parse(BaseURL)

	chapterSuffixPattern = regexp.MustCompile(`-chapter-(\d+)-(\d+)/?$`)
)

// AbsoluteURL resolves href against the upstream base. Already-absolute
// URLs pass through untouched; unparseable input yields "".
func AbsoluteURL(href string) string {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" {
		return ""
	}
	ref, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}

// ToInternalRoute converts an upstream comic link into the internal
// detail route. Links that are already internal routes are returned
// unchanged, so applying the conversion twice is safe.
func ToInternalRoute(link string) string {
	if link == "" {
		return ""
	}
	if strings.HasPrefix(link, comicRoutePrefix) {
		return link
	}

	slug := link
	if idx := strings.Index(slug, "komiku.org"); idx >= 0 {
		slug = slug[idx+len("komiku.org"):]
	}
	slug = strings.Trim(slug, "/")
	slug = strings.TrimPrefix(slug, "manga/")

	return comicRoutePrefix + slug
}

// NormalizeChapterPath rewrites the upstream's hyphenated fractional
// chapter suffix ("-chapter-120-5") into dotted form ("-chapter-120.5/").
// Paths already in dotted form no longer match and pass through as is.
func NormalizeChapterPath(path string) string {
	return chapterSuffixPattern.ReplaceAllString(path, "-chapter-$1.$2/")
}

// PrettifySlug turns a hyphenated slug into a display title. Used as
// the last resort when no title could be extracted from a page.
func PrettifySlug(slug string) string {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return "Untitled"
	}

	trimmed = strings.ReplaceAll(trimmed, "-", " ")
	parts := strings.Fields(trimmed)
	for index, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		parts[index] = string(runes)
	}
	return strings.Join(parts, " ")
}
