package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Groodev/komik-api/internal/cache"
	"github.com/Groodev/komik-api/internal/config"
	"github.com/Groodev/komik-api/internal/http/handlers"
	"github.com/Groodev/komik-api/internal/ratelimit"
)

// NewServer builds the fiber app with every route wired. The rate
// limiter guards the whole /v1 group; response caching applies only to
// the listing endpoints whose upstream pages change slowly.
func NewServer(cfg config.Config, h *handlers.Handler, store cache.Store, limiter *ratelimit.Limiter) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	app.Use(recover.New())

	app.Get("/health", h.Health)

	v1 := app.Group("/v1")
	if limiter != nil {
		v1.Use(RateLimit(limiter, cfg.RateLimitWindow))
	}

	cached := func(ttl time.Duration) fiber.Handler {
		return CacheResponses(store, ttl)
	}
	if !cfg.CacheEnabled || store == nil {
		cached = func(time.Duration) fiber.Handler {
			return func(c *fiber.Ctx) error { return c.Next() }
		}
	}

	// The configured TTL covers the slowly-changing listings; the
	// latest feed and homepage turn over faster and cache for at most
	// three minutes.
	standardTTL := cfg.CacheTTL
	if standardTTL <= 0 {
		standardTTL = 5 * time.Minute
	}
	shortTTL := 3 * time.Minute
	if standardTTL < shortTTL {
		shortTTL = standardTTL
	}

	v1.Get("/latest", cached(shortTTL), h.Latest)
	v1.Get("/popular", cached(standardTTL), h.Popular)
	v1.Get("/realtime", h.Realtime)
	v1.Get("/trending", cached(standardTTL), h.Trending)
	v1.Get("/search", h.Search)
	v1.Get("/advanced-search", h.AdvancedSearch)
	v1.Get("/browse", h.Browse)
	v1.Get("/genre/:genre", cached(standardTTL), h.Genre)
	v1.Get("/type/:type", cached(standardTTL), h.ByType)
	v1.Get("/scroll", h.Scroll)
	v1.Get("/infinite", h.Infinite)
	v1.Get("/unlimited", h.Unlimited)
	v1.Get("/random", h.Random)
	v1.Get("/homepage", cached(shortTTL), h.Homepage)
	v1.Get("/recommendations", h.Recommendations)

	v1.Get("/comics/:slug", cached(standardTTL), h.Comic)
	v1.Get("/chapters/:segment", h.ChapterImages)
	v1.Get("/chapters/:segment/navigation", h.ChapterNavigation)

	v1.Get("/genres", h.Genres)
	v1.Get("/stats", h.Stats)
	v1.Get("/health", h.Health)
	v1.Post("/cache/clear", h.CacheClear)

	return app
}
