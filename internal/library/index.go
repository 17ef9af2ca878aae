package library

import (
	"sort"

	"resonate/internal/canonical"
)

// Index is the queryable table of local tracks keyed by canonical key.
type Index struct {
	byKey   map[canonical.Key][]Record
	records []Record
}

// NewIndex builds an index over the given records. Records sharing a key
// are all retained; lookup candidates come back ordered by RelPath so
// downstream tie-breaks are deterministic.
func NewIndex(records []Record) *Index {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Key.Artist != b.Key.Artist {
			return a.Key.Artist < b.Key.Artist
		}
		if a.Key.Title != b.Key.Title {
			return a.Key.Title < b.Key.Title
		}
		return a.RelPath < b.RelPath
	})

	byKey := make(map[canonical.Key][]Record, len(sorted))
	for _, rec := range sorted {
		byKey[rec.Key] = append(byKey[rec.Key], rec)
	}
	return &Index{byKey: byKey, records: sorted}
}

// Lookup returns every record with the given key, ordered by RelPath.
func (idx *Index) Lookup(key canonical.Key) []Record {
	return idx.byKey[key]
}

// All returns every record sorted by canonical artist, title, then path.
func (idx *Index) All() []Record {
	return idx.records
}

// Len returns the number of indexed files.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Keys returns the set of canonical keys present in the index.
func (idx *Index) Keys() map[canonical.Key]struct{} {
	keys := make(map[canonical.Key]struct{}, len(idx.byKey))
	for key := range idx.byKey {
		keys[key] = struct{}{}
	}
	return keys
}
