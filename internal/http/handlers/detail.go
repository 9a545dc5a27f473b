package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Groodev/komik-api/internal/navigation"
	"github.com/Groodev/komik-api/internal/scrape"
)

// Comic serves a single comic's detail page: title, synopsis, cover,
// genres and the chapter table.
func (h *Handler) Comic(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return badRequest(c, "comic slug is required")
	}

	body, err := h.client.FetchWithRetry(c.Context(), h.catalog.Comic(slug), h.retries+1, time.Second)
	if err != nil {
		h.logger.Warn("comic detail fetch failed", "slug", slug, "error", err)
		return upstreamError(c, "error fetching comic detail")
	}

	detail, err := scrape.Detail(body, slug)
	if err != nil {
		return upstreamError(c, "error parsing comic detail")
	}
	return c.JSON(detail)
}

// ChapterImages serves the reader image list for a chapter. The path
// segment is the chapter's URL segment on the upstream site.
func (h *Handler) ChapterImages(c *fiber.Ctx) error {
	segment := c.Params("segment")
	if segment == "" {
		return badRequest(c, "chapter segment is required")
	}

	body, err := h.client.FetchWithRetry(c.Context(), h.catalog.Chapter(segment), h.retries+1, time.Second)
	if err != nil {
		h.logger.Warn("chapter fetch failed", "segment", segment, "error", err)
		return upstreamError(c, "error fetching chapter images")
	}

	pages, err := scrape.ChapterPages(body)
	if err != nil {
		return upstreamError(c, "error parsing chapter images")
	}
	return c.JSON(pages)
}

// ChapterNavigation resolves the previous and next chapter links for a
// chapter. next_chapter stays null when the page carries no forward
// link; prev_chapter may be synthesized from the chapter number.
func (h *Handler) ChapterNavigation(c *fiber.Ctx) error {
	segment := c.Params("segment")
	if segment == "" {
		return badRequest(c, "chapter segment is required")
	}

	body, err := h.client.FetchWithRetry(c.Context(), h.catalog.Chapter(segment), h.retries+1, time.Second)
	if err != nil {
		h.logger.Warn("chapter fetch failed", "segment", segment, "error", err)
		return upstreamError(c, "error fetching chapter navigation")
	}

	doc, err := scrape.ParseDocument(body)
	if err != nil {
		return upstreamError(c, "error parsing chapter page")
	}
	return c.JSON(navigation.Resolve(doc, segment))
}
