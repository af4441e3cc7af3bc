package app

import (
	"strings"
	"testing"

	"github.com/lotwatch-hq/lotwatch/internal/config"
	"github.com/lotwatch-hq/lotwatch/internal/domain"
)

func TestBuildDigestSubjectAndBody(t *testing.T) {
	cfg := &config.Config{InventoryLink: "https://www.tesla.com/inventory/new/m"}
	criteria := domain.Criteria{Model: "MY", Condition: "new", Zip: "95054", RadiusMiles: 50}
	fresh := []domain.Listing{
		{ID: "A1", VIN: "5YJYGDEE1MF000001", Trim: "Long Range", Price: "$48,990", City: "Fremont", State: "CA"},
		{ID: "A2", Trim: "Performance"},
	}

	msg := buildDigest(cfg, criteria, fresh)

	if !strings.HasPrefix(msg.Subject, "2 new MY listing(s)") {
		t.Fatalf("subject = %q", msg.Subject)
	}
	for _, want := range []string{"5YJYGDEE1MF000001", "A2", "Long Range", "Performance", "$48,990", "Fremont, CA"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.Body)
		}
	}
	if !strings.Contains(msg.Body, "zip=95054") || !strings.Contains(msg.Body, "model=MY") {
		t.Fatalf("body link missing search params:\n%s", msg.Body)
	}
}

func TestBuildDigestFillsMissingFields(t *testing.T) {
	criteria := domain.Criteria{Model: "MY", Zip: "95054", RadiusMiles: 50}
	msg := buildDigest(nil, criteria, []domain.Listing{{ID: "X"}})

	if !strings.Contains(msg.Body, "N/A") {
		t.Fatalf("missing trim/price should render as N/A:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "X") {
		t.Fatalf("id must appear when vin is absent:\n%s", msg.Body)
	}
}
