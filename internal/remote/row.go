package remote

import (
	"regexp"
	"strings"

	"resonate/internal/canonical"
)

// Row is one occurrence of a track inside one playlist export. Rows are
// immutable after load.
type Row struct {
	TrackTitleRaw    string
	PrimaryArtistRaw string
	AlbumRaw         string
	DurationMS       int64
	PlaylistName     string
	// Position is the 1-based ordering inside the playlist; 0 = unknown.
	Position   int
	IsLiked    bool
	IsTopSongs bool
	Key        canonical.Key
}

// HasDuration reports whether the export carried a duration for this row.
func (r Row) HasDuration() bool {
	return r.DurationMS > 0
}

// HasPosition reports whether the export carried an ordering position.
func (r Row) HasPosition() bool {
	return r.Position > 0
}

// ArtistPolicy selects the primary artist from a multi-artist field. The
// first listed entry wins; which separators delimit entries is policy, not
// a hardcoded rule.
type ArtistPolicy struct {
	Separators []string
}

// DefaultArtistPolicy splits on the separators streaming exports use.
func DefaultArtistPolicy() ArtistPolicy {
	return ArtistPolicy{Separators: []string{",", ";"}}
}

// Primary returns the first artist in the field under this policy.
func (p ArtistPolicy) Primary(field string) string {
	first := field
	for _, sep := range p.Separators {
		if idx := strings.Index(first, sep); idx >= 0 {
			first = first[:idx]
		}
	}
	return strings.TrimSpace(first)
}

const likedSongsName = "Liked Songs"

var topSongsPattern = regexp.MustCompile(`(?i)^(your )?top songs \d{4}$`)

// PlaylistNameFromFile derives the human playlist name from an export file
// name: extension trimmed, underscores become spaces.
func PlaylistNameFromFile(name string) string {
	stem := strings.TrimSuffix(name, ".csv")
	return strings.TrimSpace(strings.ReplaceAll(stem, "_", " "))
}

// IsLikedExport reports whether the playlist name is the liked-songs
// snapshot.
func IsLikedExport(playlistName string) bool {
	return strings.EqualFold(playlistName, likedSongsName)
}

// IsTopSongsExport reports whether the playlist name matches the yearly
// top-songs export pattern.
func IsTopSongsExport(playlistName string) bool {
	return topSongsPattern.MatchString(playlistName)
}
