package library

import (
	"path/filepath"
	"regexp"
	"strings"

	"resonate/internal/canonical"
	"resonate/internal/tags"
)

// Record describes one local audio file. RelPath is unique per record and
// always slash-separated relative to the music root.
type Record struct {
	RelPath    string
	ArtistRaw  string
	TitleRaw   string
	AlbumRaw   string
	DurationMS int64
	Key        canonical.Key
}

// HasDuration reports whether the file duration is known.
func (r Record) HasDuration() bool {
	return r.DurationMS > 0
}

// trackPrefixPattern matches leading track numbers in file stems, e.g.
// "01 - Song Title" or "1_Song Title". Legacy rips keep these prefixes,
// which would otherwise leak into canonical titles.
var trackPrefixPattern = regexp.MustCompile(`^\s*\d{1,3}[\s._-]+`)

// TitleFromStem derives a fallback title from a file name, trimming the
// extension and any leading track-number prefix.
func TitleFromStem(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	trimmed := trackPrefixPattern.ReplaceAllString(stem, "")
	if strings.TrimSpace(trimmed) == "" {
		return strings.TrimSpace(stem)
	}
	return strings.TrimSpace(trimmed)
}

// NewRecord builds a Record from a tag reading, falling back to the path
// structure (Artist/Album/Title.ext) for absent tags.
func NewRecord(canon *canonical.Canonicalizer, relPath string, reading tags.Reading) (Record, error) {
	relPath = filepath.ToSlash(relPath)
	parts := strings.Split(relPath, "/")

	artist := strings.TrimSpace(reading.Artist)
	if artist == "" && len(parts) >= 2 {
		artist = strings.TrimSpace(parts[0])
	}
	album := strings.TrimSpace(reading.Album)
	if album == "" && len(parts) >= 3 {
		album = strings.TrimSpace(parts[1])
	}
	title := strings.TrimSpace(reading.Title)
	if title == "" {
		title = TitleFromStem(relPath)
	}

	key, err := canon.Key(artist, title)
	if err != nil {
		return Record{}, err
	}

	return Record{
		RelPath:    relPath,
		ArtistRaw:  artist,
		TitleRaw:   title,
		AlbumRaw:   album,
		DurationMS: reading.DurationMS,
		Key:        key,
	}, nil
}
