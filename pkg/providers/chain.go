package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/lotwatch-hq/lotwatch/internal/domain"
)

// Logger defines the logging surface providers rely on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}

// Snapshot is the outcome of one successful fetch: the current listings and
// the source strategy that produced them.
type Snapshot struct {
	SourceID   string
	SourceName string
	Listings   []domain.Listing
}

// Chain composes source strategies as an ordered fallback list. Each source
// is attempted once per run; the first non-failure wins, zero listings
// included. Only when every strategy fails does Fetch report an error.
type Chain struct {
	registry FetcherRegistry
	sources  []Source
	log      Logger
}

// NewChain wires the ordered sources with the fetcher registry.
func NewChain(registry FetcherRegistry, sources []Source, log Logger) *Chain {
	return &Chain{
		registry: registry,
		sources:  sources,
		log:      ensureLogger(log),
	}
}

// Fetch runs the fallback sequence for the given criteria.
func (c *Chain) Fetch(ctx context.Context, criteria domain.Criteria) (Snapshot, error) {
	if c == nil || c.registry == nil {
		return Snapshot{}, fmt.Errorf("source chain is not initialized")
	}
	if len(c.sources) == 0 {
		return Snapshot{}, fmt.Errorf("no sources configured")
	}

	var errs []error
	for _, src := range c.sources {
		listings, err := c.fetchSource(ctx, src, criteria)
		if err != nil {
			errs = append(errs, err)
			c.log.WarnObj("source fetch failed, trying next", "source_error", map[string]any{
				"source_id": src.ID,
				"error":     err.Error(),
			})
			continue
		}

		c.log.InfoObj("source fetch completed", "source_result", map[string]any{
			"source_id":      src.ID,
			"listings_found": len(listings),
		})
		return Snapshot{SourceID: src.ID, SourceName: src.Name, Listings: listings}, nil
	}

	return Snapshot{}, fmt.Errorf("all sources failed: %w", errors.Join(errs...))
}

func (c *Chain) fetchSource(ctx context.Context, src Source, criteria domain.Criteria) ([]domain.Listing, error) {
	fetcher, err := c.registry.FetcherFor(src)
	if err != nil {
		return nil, fmt.Errorf("resolve fetcher for source %s: %w", src.ID, err)
	}

	listings, err := fetcher.Fetch(ctx, src, criteria)
	if err != nil {
		return nil, fmt.Errorf("fetch source %s: %w", src.ID, err)
	}
	return listings, nil
}
