// Package handlers implements the API endpoints. Each listing endpoint
// is an aggregation profile: a fixed set of upstream sources, a dedup
// rule, a sort, and a pagination window.
package handlers

import (
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Groodev/komik-api/internal/aggregate"
	"github.com/Groodev/komik-api/internal/cache"
	"github.com/Groodev/komik-api/internal/fetcher"
	"github.com/Groodev/komik-api/internal/komiku"
	"github.com/Groodev/komik-api/internal/scrape"
)

type Handler struct {
	agg     *aggregate.Aggregator
	client  *fetcher.Client
	catalog komiku.Catalog
	cache   cache.Store
	logger  *slog.Logger
	retries int

	// extraStrategies come from the YAML strategy directory and widen
	// the deep-catalog endpoints to layouts the built-ins miss.
	extraStrategies []scrape.Strategy
}

type Options struct {
	Client          *fetcher.Client
	Catalog         komiku.Catalog
	Cache           cache.Store
	Logger          *slog.Logger
	Retries         int
	ExtraStrategies []scrape.Strategy
}

func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	client := opts.Client
	if client == nil {
		client = fetcher.New(fetcher.Options{})
	}
	catalog := opts.Catalog
	if catalog.Base == "" {
		catalog = komiku.NewCatalog()
	}
	store := opts.Cache
	if store == nil {
		store = cache.NewMemory()
	}
	return &Handler{
		agg:             aggregate.New(client, logger),
		client:          client,
		catalog:         catalog,
		cache:           store,
		logger:          logger,
		retries:         opts.Retries,
		extraStrategies: opts.ExtraStrategies,
	}
}

// queryInt reads an integer query parameter, clamping to [1, max].
// max of zero means no upper bound.
func queryInt(c *fiber.Ctx, key string, fallback, max int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 1 {
		value = fallback
	}
	if max > 0 && value > max {
		value = max
	}
	return value
}

// queryOffset reads a non-negative integer query parameter.
func queryOffset(c *fiber.Ctx, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func parseInt64(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}

func upstreamError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": message})
}
