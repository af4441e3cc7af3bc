package providers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lotwatch-hq/lotwatch/internal/domain"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB

	ConfigItemSelectorKey  = "item_selector"
	ConfigEmptySelectorKey = "empty_selector"
	ConfigTrimSelectorKey  = "trim_selector"
	ConfigPriceSelectorKey = "price_selector"

	defaultItemSelector  = "article.result-container, [data-vin]"
	defaultEmptySelector = ".results-empty, .no-results"
)

// pageScrapeFetcher implements Fetcher by extracting listing cards from a
// rendered inventory page. It is the fallback strategy when the structured
// query endpoint is unavailable; ids synthesized from card text are only as
// stable as the page's rendering of the same listing.
type pageScrapeFetcher struct {
	client HTTPClient
}

func NewPageScrapeFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient(0)
	}
	return &pageScrapeFetcher{client: client}
}

func (f *pageScrapeFetcher) ID() string {
	return SourceTypePageScrape
}

func (f *pageScrapeFetcher) Fetch(ctx context.Context, src Source, criteria domain.Criteria) ([]domain.Listing, error) {
	if !strings.EqualFold(src.Type, SourceTypePageScrape) {
		return nil, fmt.Errorf("page scrape fetcher received incompatible source type %q", src.Type)
	}
	if strings.TrimSpace(src.Endpoint) == "" {
		return nil, fmt.Errorf("source %q endpoint is empty", src.ID)
	}

	pageURL, err := buildPageURL(src.Endpoint, criteria)
	if err != nil {
		return nil, fmt.Errorf("build %s page url: %w", src.ID, err)
	}

	resp, err := f.client.Get(ctx, pageURL, Headers(src))
	if err != nil {
		return nil, fmt.Errorf("fetch %s page: %w", src.ID, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s page returned status %d body: %s", src.ID, resp.StatusCode(), responseSnippet(body))
	}
	// Truncating would split a card and shift its synthesized id between
	// runs; an oversized page fails the source so the chain can fall back.
	if len(body) > maxHTMLBodyBytes {
		return nil, fmt.Errorf("%s page body is %d bytes, exceeds %d byte limit", src.ID, len(body), maxHTMLBodyBytes)
	}

	return extractListings(src, body)
}

func buildPageURL(endpoint string, criteria domain.Criteria) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("zip", criteria.Zip)
	q.Set("model", criteria.Model)
	q.Set("range", strconv.Itoa(criteria.RadiusMiles))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// extractListings pulls listing cards out of the page. No cards and no
// explicit empty marker means the page layout was not understood, which is a
// failure (triggering fallback or propagation), not an empty result.
func extractListings(src Source, body []byte) ([]domain.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s page html: %w", src.ID, err)
	}

	itemSelector := ConfigString(src, ConfigItemSelectorKey, defaultItemSelector)
	emptySelector := ConfigString(src, ConfigEmptySelectorKey, defaultEmptySelector)
	trimSelector := ConfigString(src, ConfigTrimSelectorKey, "")
	priceSelector := ConfigString(src, ConfigPriceSelectorKey, "")

	items := doc.Find(itemSelector)
	if items.Length() == 0 {
		if doc.Find(emptySelector).Length() > 0 {
			return []domain.Listing{}, nil
		}
		return nil, fmt.Errorf("%s page contained no listing cards and no empty-results marker", src.ID)
	}

	listings := make([]domain.Listing, 0, items.Length())
	items.Each(func(_ int, card *goquery.Selection) {
		l := domain.Listing{}

		if vin, ok := card.Attr("data-vin"); ok && strings.TrimSpace(vin) != "" {
			l.VIN = strings.TrimSpace(vin)
			l.ID = l.VIN
		} else if id, ok := card.Attr("data-id"); ok && strings.TrimSpace(id) != "" {
			l.ID = strings.TrimSpace(id)
		} else {
			l.ID = hashExcerpt(card.Text())
		}

		if trimSelector != "" {
			l.Trim = normalizeSpace(card.Find(trimSelector).First().Text())
		}
		if priceSelector != "" {
			l.Price = normalizeSpace(card.Find(priceSelector).First().Text())
		}

		listings = append(listings, l)
	})

	return listings, nil
}
