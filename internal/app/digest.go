package app

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lotwatch-hq/lotwatch/internal/config"
	"github.com/lotwatch-hq/lotwatch/internal/domain"
	"github.com/lotwatch-hq/lotwatch/internal/notify"
)

// buildDigest renders the single aggregate notification for a run. Every new
// listing gets its own block; the message never covers just the first hit.
func buildDigest(cfg *config.Config, criteria domain.Criteria, fresh []domain.Listing) notify.Message {
	subject := fmt.Sprintf("%d new %s listing(s) near %s", len(fresh), criteria.Model, criteria.Zip)

	var b strings.Builder
	fmt.Fprintf(&b, "New %s inventory near %s (within %d miles):\n\n",
		criteria.Model, criteria.Zip, criteria.RadiusMiles)

	for i, l := range fresh {
		fmt.Fprintf(&b, "%d. Trim: %s\n", i+1, orNA(l.Trim))
		fmt.Fprintf(&b, "   Price: %s\n", orNA(l.Price))
		fmt.Fprintf(&b, "   VIN/ID: %s\n", orNA(firstNonEmpty(l.VIN, l.ID)))
		if l.City != "" || l.State != "" {
			fmt.Fprintf(&b, "   Location: %s, %s\n", l.City, l.State)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Link: %s\n", inventoryLink(cfg, criteria))

	return notify.Message{Subject: subject, Body: b.String()}
}

func inventoryLink(cfg *config.Config, criteria domain.Criteria) string {
	base := ""
	if cfg != nil {
		base = cfg.InventoryLink
	}
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return base
	}

	q := u.Query()
	q.Set("zip", criteria.Zip)
	q.Set("model", criteria.Model)
	u.RawQuery = q.Encode()
	return u.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
