package delta

import "github.com/lotwatch-hq/lotwatch/internal/domain"

// Package delta implements the change-detection core: given the current
// inventory snapshot and the set of previously notified listing ids, it
// decides which listings are new and what the persisted set becomes.

// Compute returns the listings from current whose ID is absent from seen,
// preserving snapshot order, together with the updated seen set. The input
// set is never mutated; updated starts as a copy and grows monotonically.
// A repeated id within one snapshot counts once; identity is exact string
// equality on ID. Records with an empty ID are skipped: id validation is
// the provider's responsibility, the engine just refuses to key on "".
func Compute(current []domain.Listing, seen map[string]struct{}) (fresh []domain.Listing, updated map[string]struct{}) {
	updated = make(map[string]struct{}, len(seen)+len(current))
	for id := range seen {
		updated[id] = struct{}{}
	}

	for _, l := range current {
		if l.ID == "" {
			continue
		}
		if _, ok := updated[l.ID]; ok {
			continue
		}
		updated[l.ID] = struct{}{}
		fresh = append(fresh, l)
	}

	return fresh, updated
}
