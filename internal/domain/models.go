package domain

// Domain contains core models shared across the watcher pipeline.

// Listing is one observed inventory item at snapshot time. ID is the sole
// deduplication key and must be non-empty; everything else is informational
// and only used for notification text.
type Listing struct {
	ID      string
	VIN     string
	Model   string
	Trim    string
	Price   string
	Miles   string
	City    string
	State   string
	StockID string
}

// Criteria fixes the inventory query for a run: model, condition, origin ZIP
// and search radius in miles.
type Criteria struct {
	Model       string
	Condition   string
	Zip         string
	RadiusMiles int
}
