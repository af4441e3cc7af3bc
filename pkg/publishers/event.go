package publishers

import (
	"time"

	"github.com/lotwatch-hq/lotwatch/internal/domain"
)

// Event represents one newly observed listing published downstream.
type Event struct {
	SourceID   string         `json:"source_id"`
	SourceName string         `json:"source_name"`
	Listing    domain.Listing `json:"listing"`
	ObservedAt time.Time      `json:"observed_at"`
}

// NewEvent constructs an Event for the given source + listing.
func NewEvent(sourceID, sourceName string, listing domain.Listing) Event {
	return Event{
		SourceID:   sourceID,
		SourceName: sourceName,
		Listing:    listing,
		ObservedAt: time.Now().UTC(),
	}
}
