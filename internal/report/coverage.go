package report

import (
	"sort"

	"resonate/internal/canonical"
	"resonate/internal/match"
)

// PlaylistCoverage summarizes one playlist's resolution state.
type PlaylistCoverage struct {
	Name            string
	Total           int
	Resolved        int
	Missing         int
	PercentComplete float64
}

// Coverage aggregates per-playlist and global resolution totals.
type Coverage struct {
	Playlists []PlaylistCoverage
	Total     int
	Resolved  int
	Missing   int
	// UniqueMissing counts distinct canonical keys among unresolved rows
	// across all playlists combined.
	UniqueMissing int
}

// BuildCoverage computes coverage from a matched row set. Playlists sort by
// percent complete descending, then name; a playlist with zero rows reports
// zero percent.
func BuildCoverage(results []match.Result) Coverage {
	perPlaylist := make(map[string]*PlaylistCoverage)
	var order []string
	missingKeys := make(map[canonical.Key]struct{})

	coverage := Coverage{}
	for _, result := range results {
		name := result.Row.PlaylistName
		entry, ok := perPlaylist[name]
		if !ok {
			entry = &PlaylistCoverage{Name: name}
			perPlaylist[name] = entry
			order = append(order, name)
		}
		entry.Total++
		coverage.Total++
		if result.Resolved() {
			entry.Resolved++
			coverage.Resolved++
		} else {
			entry.Missing++
			coverage.Missing++
			missingKeys[result.Row.Key] = struct{}{}
		}
	}

	coverage.UniqueMissing = len(missingKeys)
	coverage.Playlists = make([]PlaylistCoverage, 0, len(order))
	for _, name := range order {
		entry := perPlaylist[name]
		if entry.Total > 0 {
			entry.PercentComplete = float64(entry.Resolved) / float64(entry.Total) * 100
		}
		coverage.Playlists = append(coverage.Playlists, *entry)
	}
	sort.Slice(coverage.Playlists, func(i, j int) bool {
		a, b := coverage.Playlists[i], coverage.Playlists[j]
		if a.PercentComplete != b.PercentComplete {
			return a.PercentComplete > b.PercentComplete
		}
		return a.Name < b.Name
	})
	return coverage
}
