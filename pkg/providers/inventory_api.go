package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/lotwatch-hq/lotwatch/internal/domain"
)

// inventoryAPIFetcher implements Fetcher against a structured inventory query
// endpoint: a JSON POST carrying the search criteria, answered with a results
// array of vehicle records.
type inventoryAPIFetcher struct {
	client HTTPClient
}

func NewInventoryAPIFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient(0)
	}
	return &inventoryAPIFetcher{client: client}
}

func (f *inventoryAPIFetcher) ID() string {
	return SourceTypeInventoryAPI
}

// inventoryQuery is the request payload the inventory endpoint expects.
type inventoryQuery struct {
	Query inventoryQueryBody `json:"query"`
}

type inventoryQueryBody struct {
	Model     string `json:"model"`
	Condition string `json:"condition"`
	Zip       string `json:"zip"`
	Range     int    `json:"range"`
}

func (f *inventoryAPIFetcher) Fetch(ctx context.Context, src Source, criteria domain.Criteria) ([]domain.Listing, error) {
	if !strings.EqualFold(src.Type, SourceTypeInventoryAPI) {
		return nil, fmt.Errorf("inventory api fetcher received incompatible source type %q", src.Type)
	}
	if strings.TrimSpace(src.Endpoint) == "" {
		return nil, fmt.Errorf("source %q endpoint is empty", src.ID)
	}

	payload := inventoryQuery{
		Query: inventoryQueryBody{
			Model:     criteria.Model,
			Condition: criteria.Condition,
			Zip:       criteria.Zip,
			Range:     criteria.RadiusMiles,
		},
	}

	resp, err := f.client.Post(ctx, src.Endpoint, Headers(src), payload)
	if err != nil {
		return nil, fmt.Errorf("query %s inventory: %w", src.ID, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s inventory returned status %d body: %s", src.ID, resp.StatusCode(), responseSnippet(body))
	}

	listings, err := parseInventoryResults(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s inventory results: %w", src.ID, err)
	}
	// Zero vehicles is a valid empty result, not a failure.
	return listings, nil
}

type inventoryResponse struct {
	Results []json.RawMessage `json:"results"`
}

// parseInventoryResults maps raw vehicle records to listings. The id comes
// from the first structured field available (id, vin, inventory_id); when
// none exists one is synthesized from the record text.
func parseInventoryResults(body []byte) ([]domain.Listing, error) {
	var envelope inventoryResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	listings := make([]domain.Listing, 0, len(envelope.Results))
	for i, raw := range envelope.Results {
		record, err := decodeVehicleRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("results[%d]: %w", i, err)
		}

		l := domain.Listing{
			VIN:     fieldString(record, "vin"),
			Model:   fieldString(record, "model"),
			Trim:    fieldString(record, "trim"),
			Price:   fieldString(record, "price"),
			Miles:   fieldString(record, "miles"),
			City:    fieldString(record, "city"),
			State:   fieldString(record, "state"),
			StockID: fieldString(record, "inventory_id"),
		}

		switch {
		case fieldString(record, "id") != "":
			l.ID = fieldString(record, "id")
		case l.VIN != "":
			l.ID = l.VIN
		case l.StockID != "":
			l.ID = l.StockID
		default:
			l.ID = hashExcerpt(string(raw))
		}

		listings = append(listings, l)
	}
	return listings, nil
}

func decodeVehicleRecord(raw json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return nil, err
	}
	return record, nil
}

// fieldString renders a loosely-typed record field as display text. Sources
// are inconsistent about whether prices, mileage, and ids arrive as strings
// or numbers.
func fieldString(record map[string]any, key string) string {
	switch v := record[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
