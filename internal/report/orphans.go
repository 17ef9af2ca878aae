package report

import (
	"resonate/internal/canonical"
	"resonate/internal/library"
	"resonate/internal/match"
)

// BuildOrphans returns the local records whose canonical key appears in no
// remote row, resolved or not. The result keeps the index ordering
// (canonical artist, title, path).
func BuildOrphans(results []match.Result, idx *library.Index) []library.Record {
	referenced := make(map[canonical.Key]struct{}, len(results))
	for _, result := range results {
		referenced[result.Row.Key] = struct{}{}
	}

	var orphans []library.Record
	for _, rec := range idx.All() {
		if _, ok := referenced[rec.Key]; !ok {
			orphans = append(orphans, rec)
		}
	}
	return orphans
}
