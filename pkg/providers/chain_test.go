package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/lotwatch-hq/lotwatch/internal/domain"
)

// scriptedFetcher returns a canned result and counts invocations.
type scriptedFetcher struct {
	id       string
	listings []domain.Listing
	err      error
	calls    int
}

func (s *scriptedFetcher) ID() string { return s.id }

func (s *scriptedFetcher) Fetch(context.Context, Source, domain.Criteria) ([]domain.Listing, error) {
	s.calls++
	return s.listings, s.err
}

func chainWith(fetchers ...*scriptedFetcher) *Chain {
	reg := make(map[string]Fetcher, len(fetchers))
	sources := make([]Source, 0, len(fetchers))
	for _, f := range fetchers {
		reg[f.id] = f
		sources = append(sources, Source{ID: f.id, Name: f.id, Type: f.id, Endpoint: "https://x.example"})
	}
	return NewChain(NewTypeFetcherRegistry(reg), sources, nil)
}

func TestChainFirstSuccessWins(t *testing.T) {
	primary := &scriptedFetcher{id: "primary", listings: []domain.Listing{{ID: "V1"}}}
	fallback := &scriptedFetcher{id: "fallback", listings: []domain.Listing{{ID: "V2"}}}
	chain := chainWith(primary, fallback)

	snap, err := chain.Fetch(context.Background(), testCriteria())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(snap.Listings) != 1 || snap.Listings[0].ID != "V1" {
		t.Fatalf("expected primary result, got %v", snap.Listings)
	}
	if snap.SourceID != "primary" {
		t.Fatalf("snapshot must name the winning source, got %q", snap.SourceID)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback must not run after a primary success")
	}
}

func TestChainFallsBackOnFailure(t *testing.T) {
	primary := &scriptedFetcher{id: "primary", err: errors.New("endpoint gone")}
	fallback := &scriptedFetcher{id: "fallback", listings: []domain.Listing{{ID: "V2"}}}
	chain := chainWith(primary, fallback)

	snap, err := chain.Fetch(context.Background(), testCriteria())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(snap.Listings) != 1 || snap.Listings[0].ID != "V2" {
		t.Fatalf("expected fallback result, got %v", snap.Listings)
	}
	if snap.SourceID != "fallback" {
		t.Fatalf("snapshot must name the winning source, got %q", snap.SourceID)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("expected one attempt per strategy, got %d/%d", primary.calls, fallback.calls)
	}
}

func TestChainEmptySuccessStopsFallback(t *testing.T) {
	primary := &scriptedFetcher{id: "primary", listings: []domain.Listing{}}
	fallback := &scriptedFetcher{id: "fallback", listings: []domain.Listing{{ID: "V2"}}}
	chain := chainWith(primary, fallback)

	snap, err := chain.Fetch(context.Background(), testCriteria())
	if err != nil {
		t.Fatalf("zero matches is a valid success: %v", err)
	}
	if len(snap.Listings) != 0 {
		t.Fatalf("expected empty result, got %v", snap.Listings)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback must not run after an empty success")
	}
}

func TestChainAllFailuresPropagate(t *testing.T) {
	primary := &scriptedFetcher{id: "primary", err: errors.New("api down")}
	fallback := &scriptedFetcher{id: "fallback", err: errors.New("page blocked")}
	chain := chainWith(primary, fallback)

	_, err := chain.Fetch(context.Background(), testCriteria())
	if err == nil {
		t.Fatalf("expected error when every strategy fails")
	}
}

func TestChainWithNoSourcesFails(t *testing.T) {
	chain := NewChain(NewTypeFetcherRegistry(nil), nil, nil)
	if _, err := chain.Fetch(context.Background(), testCriteria()); err == nil {
		t.Fatalf("expected error for empty source list")
	}
}
