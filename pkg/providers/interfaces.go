package providers

import (
	"context"

	"github.com/lotwatch-hq/lotwatch/internal/domain"
	"github.com/lotwatch-hq/lotwatch/pkg/httpclient"
)

// Fetcher retrieves the current inventory snapshot for one source strategy.
// Concrete implementations live in strategy-specific files (inventory_api.go,
// page_scrape.go). A nil-error return with zero listings is a valid empty
// result; an error means the strategy could not determine the inventory.
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, src Source, criteria domain.Criteria) ([]domain.Listing, error)
}

// FetcherRegistry resolves the fetcher implementation for a given source config.
type FetcherRegistry interface {
	FetcherFor(src Source) (Fetcher, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within providers.
type HTTPClient = httpclient.Client
