// Package aggregate fans requests out over upstream source pages and
// merges the extracted records into one deduplicated result set.
package aggregate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Groodev/komik-api/internal/fetcher"
	"github.com/Groodev/komik-api/internal/models"
	"github.com/Groodev/komik-api/internal/scrape"
)

// DedupMode decides which record survives when two sources publish the
// same link.
type DedupMode int

const (
	// FirstWins keeps the record from the earliest source.
	FirstWins DedupMode = iota
	// PriorityWins keeps the record with the lowest Priority value.
	PriorityWins
)

// Source is one upstream page to scrape. Priority orders records under
// PriorityWins; lower values win ties.
type Source struct {
	URL      string
	Strategy scrape.Strategy
	Priority int

	// Accumulate extracts over every container group of the strategy
	// instead of stopping at the first productive one.
	Accumulate bool

	// FallbackUnfiltered reruns extraction without the strategy's link
	// filter when the filtered pass produced nothing.
	FallbackUnfiltered bool

	// Retries above zero enables bounded retry on fetch failure.
	Retries int
}

// Policy shapes one aggregation run.
type Policy struct {
	Concurrent bool
	Dedup      DedupMode

	// EarlyStop ends a sequential run once this many unique records
	// were collected. Zero disables it.
	EarlyStop int

	// MaxRecords bounds the merged result. Zero means unbounded.
	MaxRecords int
}

// Aggregator runs collection passes. Safe for concurrent use.
type Aggregator struct {
	client  *fetcher.Client
	logger  *slog.Logger
	backoff time.Duration
}

func New(client *fetcher.Client, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{client: client, logger: logger, backoff: time.Second}
}

// Collect fetches every source and merges the records per the policy.
// A failing source is logged and skipped; an empty result is not an
// error.
func (a *Aggregator) Collect(ctx context.Context, sources []Source, policy Policy) []models.ComicRecord {
	if policy.Concurrent {
		return a.merge(a.collectConcurrent(ctx, sources), policy)
	}
	return a.collectSequential(ctx, sources, policy)
}

func (a *Aggregator) collectSequential(ctx context.Context, sources []Source, policy Policy) []models.ComicRecord {
	merged := newMergeState(policy)
	for _, source := range sources {
		if ctx.Err() != nil {
			break
		}
		merged.add(a.fetchSource(ctx, source))
		if policy.EarlyStop > 0 && merged.len() >= policy.EarlyStop {
			break
		}
	}
	return merged.records(policy.MaxRecords)
}

func (a *Aggregator) collectConcurrent(ctx context.Context, sources []Source) [][]models.ComicRecord {
	results := make([][]models.ComicRecord, len(sources))

	var wg sync.WaitGroup
	for i, source := range sources {
		wg.Add(1)
		go func(i int, source Source) {
			defer wg.Done()
			results[i] = a.fetchSource(ctx, source)
		}(i, source)
	}
	wg.Wait()

	return results
}

func (a *Aggregator) merge(results [][]models.ComicRecord, policy Policy) []models.ComicRecord {
	merged := newMergeState(policy)
	for _, records := range results {
		merged.add(records)
	}
	return merged.records(policy.MaxRecords)
}

func (a *Aggregator) fetchSource(ctx context.Context, source Source) []models.ComicRecord {
	var body []byte
	var err error
	if source.Retries > 0 {
		body, err = a.client.FetchWithRetry(ctx, source.URL, source.Retries, a.backoff)
	} else {
		body, err = a.client.Fetch(ctx, source.URL)
	}
	if err != nil {
		a.logger.Warn("source fetch failed", "url", source.URL, "error", err)
		return nil
	}

	doc, err := scrape.ParseDocument(body)
	if err != nil {
		a.logger.Warn("source parse failed", "url", source.URL, "error", err)
		return nil
	}

	records := a.extract(doc, source.Strategy, source.Accumulate)
	if len(records) == 0 && source.FallbackUnfiltered && len(source.Strategy.LinkMustContain) > 0 {
		records = a.extract(doc, source.Strategy.WithoutLinkFilter(), source.Accumulate)
	}

	for i := range records {
		records[i].Priority = source.Priority
		records[i].SourceKey = source.URL
	}
	return records
}

func (a *Aggregator) extract(doc *goquery.Document, strategy scrape.Strategy, accumulate bool) []models.ComicRecord {
	if accumulate {
		return scrape.RecordsAll(doc, strategy, 0)
	}
	return scrape.Records(doc, strategy)
}

// mergeState keeps insertion order while deduplicating by link.
type mergeState struct {
	dedup DedupMode
	index map[string]int
	items []models.ComicRecord
}

func newMergeState(policy Policy) *mergeState {
	return &mergeState{dedup: policy.Dedup, index: make(map[string]int)}
}

func (m *mergeState) add(records []models.ComicRecord) {
	for _, record := range records {
		existing, ok := m.index[record.Link]
		if !ok {
			m.index[record.Link] = len(m.items)
			m.items = append(m.items, record)
			continue
		}
		if m.dedup == PriorityWins && record.Priority < m.items[existing].Priority {
			m.items[existing] = record
		}
	}
}

func (m *mergeState) len() int {
	return len(m.items)
}

func (m *mergeState) records(max int) []models.ComicRecord {
	if max > 0 && len(m.items) > max {
		return m.items[:max]
	}
	return m.items
}
