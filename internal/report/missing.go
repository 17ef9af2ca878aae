package report

import (
	"sort"

	"resonate/internal/canonical"
	"resonate/internal/match"
)

// MissingTrack is one shopping-list entry: a unique canonical key among the
// unresolved rows, with representative display values and the playlists
// that want it.
type MissingTrack struct {
	Artist         string
	Title          string
	Album          string
	DurationMS     int64
	Playlists      []string
	PlaylistsCount int
	IsLiked        bool
	IsTopSongs     bool
	Key            canonical.Key
}

// BuildMissing aggregates unresolved rows by canonical key. Display values
// come from the first occurrence (album from the first non-empty one),
// liked/top flags OR across the group, and the playlist set is distinct.
// Entries sort by playlist count descending, liked first, then artist and
// title for reproducibility.
func BuildMissing(results []match.Result) []MissingTrack {
	groups := make(map[canonical.Key]*MissingTrack)
	seenPlaylist := make(map[canonical.Key]map[string]struct{})
	var order []canonical.Key

	for _, result := range results {
		if result.Resolved() {
			continue
		}
		row := result.Row
		group, ok := groups[row.Key]
		if !ok {
			group = &MissingTrack{
				Artist:     row.PrimaryArtistRaw,
				Title:      row.TrackTitleRaw,
				Album:      row.AlbumRaw,
				DurationMS: row.DurationMS,
				Key:        row.Key,
			}
			groups[row.Key] = group
			seenPlaylist[row.Key] = make(map[string]struct{})
			order = append(order, row.Key)
		}
		if group.Album == "" && row.AlbumRaw != "" {
			group.Album = row.AlbumRaw
		}
		group.IsLiked = group.IsLiked || row.IsLiked
		group.IsTopSongs = group.IsTopSongs || row.IsTopSongs
		if _, dup := seenPlaylist[row.Key][row.PlaylistName]; !dup {
			seenPlaylist[row.Key][row.PlaylistName] = struct{}{}
			group.Playlists = append(group.Playlists, row.PlaylistName)
		}
	}

	missing := make([]MissingTrack, 0, len(order))
	for _, key := range order {
		group := groups[key]
		sort.Strings(group.Playlists)
		group.PlaylistsCount = len(group.Playlists)
		missing = append(missing, *group)
	}

	sort.Slice(missing, func(i, j int) bool {
		a, b := missing[i], missing[j]
		if a.PlaylistsCount != b.PlaylistsCount {
			return a.PlaylistsCount > b.PlaylistsCount
		}
		if a.IsLiked != b.IsLiked {
			return a.IsLiked
		}
		if a.Artist != b.Artist {
			return a.Artist < b.Artist
		}
		return a.Title < b.Title
	})
	return missing
}
